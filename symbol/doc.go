// Package symbol builds the table of names visible to every pipeline stage.
//
// A [Table] has three tiers, searched in this order:
//
//  1. the user tier, loaded from symbol files given on the command line or
//     in the environment;
//  2. the builtins, exposed under bare names (int, len, sorted, ...);
//  3. the default tier, the public names of the default libraries, each
//     registered with a leading underscore (_sqrt, _glob, _wrap, ...).
//
// Tables are built once per run with a [Builder] and are read-only
// afterward.
package symbol
