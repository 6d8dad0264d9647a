// Package services contains the core application logic, orchestrating
// domain operations through the driven ports. Services implement the
// driving port interfaces consumed by the CLI and the watcher.
//
// The pipeline runs in two directions: ingestion pushes document text
// through chunking, embedding, and storage; a chat turn pulls the most
// relevant stored chunks back out, assembles a model-ready prompt, and
// hands it to the inference engine.
package services
