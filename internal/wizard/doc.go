// Package wizard holds the state of one mapping configuration run.
//
// A Session walks the same steps as the browser wizard:
//
//  1. load a sample source file and upload it to the backend,
//  2. load the JSON target structure, tag its paths and push it,
//  3. build the mapping, by hand or with AutoMap, and validate it,
//  4. save the mapping and let the backend generate the output,
//  5. fetch the generated JSON.
//
// A step returns ErrStepNotReady until its prerequisites exist.
// A Session is not safe for concurrent use.
package wizard
