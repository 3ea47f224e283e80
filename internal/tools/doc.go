// Package tools implements the archive operations exposed by the server.
//
// Each operation is a small struct pairing an input type with an Execute
// method; use [RegisterAll] to register the full set:
//
//	tools.RegisterAll(reg, tools.Deps{
//	    Client:   client,
//	    Schemas:  catalog,
//	    Enhancer: enhancer,
//	})
package tools
