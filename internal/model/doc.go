// Package model defines the typed documents persisted by the binaa-core
// store, the status vocabularies of the workflow entities, and the
// collection keys under which each entity type lives.
//
// Documents are plain structs with JSON tags matching the persisted
// camelCase field names. Optional fields are pointers or omitempty values;
// validation happens at the repository boundary, not at read sites.
//
// Every entity embeds Meta, which carries the generated id and the
// created/updated timestamps the repositories maintain.
package model
