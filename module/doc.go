// Package module provides the importable modules that pipeline stages reach
// through dotted names, such as json.decode or encoding.base64.encode.
//
// A [Registry] maps dotted module paths to their members. A [Resolver]
// imports modules from a registry on first use: for a free name and the
// dotted paths a stage accesses through it, it imports successively longer
// prefixes until one fails, then checks the remaining segments as
// attributes of what was imported.
package module
