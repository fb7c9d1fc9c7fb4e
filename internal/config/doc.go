// Package config loads the shelf configuration file.
//
// The file is CUE. It is unified with an embedded #Config schema that
// supplies defaults and constraints, then decoded into Config. Values are
// passed explicitly to constructors; nothing here is global.
//
//	database: path: "/var/lib/shelf/shelf.db"
//	log: level: "debug"
//	reorder: serialize_collections: true
package config
