// internal/types/types.go
package types

// EntityID identifies a single entity inside the ECS. IDs are allocated
// sequentially and never reused within a run; 0 is reserved as "no entity".
type EntityID uint64

// None is the zero EntityID, used for unset references.
const None EntityID = 0
