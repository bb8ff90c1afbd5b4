// Package trackable owns the typed property codecs used to synchronize game
// views between a source of truth and a remote observer.
//
// Ownership boundary:
// - Type[T] descriptors (default value, serialize, deserialize)
// - primitive, enum, reference, embedded-state and composite text codecs
// - pending references and the Index contract used to resolve them
//
// Descriptors never hold per-call state. Stream I/O is delegated to the
// Serializer and Deserializer collaborators, id resolution to an Index.
package trackable
