// Package kdl parses and emits KDL 2.0 documents, and binds them against declarative Go struct schemas. Parsing
// and emission live in parse.go/emit.go; schema binding (the Unmarshal/Marshal pair and the escape-hatch codec
// interfaces) lives in schema_api.go, built on the schema and binder packages.
package kdl

import (
	"github.com/kdl2x/kdl2/binder"
)

// Marshaler lets a schema-bound type take over emitting its own node, bypassing normal slot reflection.
type Marshaler = binder.NodeMarshaler

// Unmarshaler is Marshaler's inverse: a type that populates itself from an already-parsed node.
type Unmarshaler = binder.NodeUnmarshaler

// ValueMarshaler lets a scalar-typed schema field take over producing its own value.
type ValueMarshaler = binder.ValueMarshaler

// ValueUnmarshaler is ValueMarshaler's inverse.
type ValueUnmarshaler = binder.ValueUnmarshaler
