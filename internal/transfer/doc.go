// Package transfer resolves stream inputs to local files ahead of packaging.
//
// Inputs that already carry a fully-qualified location ignore the configured
// source root; schemeless locations resolve against it. Local locations
// resolve to absolute paths with no transfer step, while s3:// and http(s)://
// locations are downloaded into the run's staging directory - concurrently
// for the whole input set, with the first failure cancelling the rest.
package transfer
