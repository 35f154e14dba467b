package core

// IDGenerator issues unique, roughly time-ordered 64-bit identifiers
type IDGenerator interface {
	NextID() int64
}
