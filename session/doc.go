// Package session persists architecture graphs between pipeline calls.
//
// The Store interface is deliberately small — get, set, exists, delete —
// because the pipeline treats persistence as an opaque collaborator with
// last-write-wins semantics. Three implementations are provided:
//
//   - MemoryStore: mutex-guarded map, for tests and single-process use
//   - RedisStore: go-redis/v9 backend with optional TTL
//   - EtcdStore: etcd client v3 backend with namespaced keys
package session
