package core

// PixelChannel is the LED output channel.
//
// Words are consumed in the exact order submitted. The channel is a bounded
// queue: Put blocks while it is full. Writes are assumed to always succeed.
type PixelChannel interface {
	Put(word uint32)
}
