// Package awscli mediates object-storage transfers through the aws
// command-line tool.
//
// Nothing here speaks the S3 protocol: downloads and recursive uploads shell
// out to `aws s3 cp`, optionally pointed at a non-default endpoint for
// S3-compatible stores. Non-zero exits surface as errors carrying the tool's
// captured output.
package awscli
