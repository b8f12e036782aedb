// Package appmsg implements the watch toolkit's message service: ordered
// tuple dictionaries and the inbox/outbox pair linking the watchface to its
// companion application.
//
// # Dictionaries
//
// A Dict is a list of tuples in delivery order. Each tuple has a numeric key,
// a value type (bytes, cstring, uint, int) and raw little-endian bytes. Two
// encodings are provided:
//
//   - MarshalBinary/UnmarshalBinary: the toolkit layout, a count byte then
//     key (u32), type (u8), length (u16), value per tuple.
//   - MarshalJSON/UnmarshalJSON: an object keyed by decimal keys, the shape
//     companion scripts exchange. Document order is preserved.
//
// # Channels
//
// Outbox accepts one message at a time. Send returns a tea.Cmd that performs
// the delivery off the event loop and reports SentMsg or FailedMsg; the loop
// calls Settle when it handles either result. There is no retry.
//
// Inbox is a bounded channel filled by the companion link. Deliver never
// blocks: a full inbox drops the message and the loop later receives a
// DroppedMsg with the number of messages lost. Listen returns the command
// the loop re-issues to wait for the next event.
package appmsg
