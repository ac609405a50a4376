// Package ws owns the streaming sync protocol between a tracked client
// and the intervention engine.
//
// One websocket connection carries two independent sub-protocols,
// processed sequentially by a single per-connection task so outbound
// ordering follows inbound ordering:
//
//   - Heartbeat loop: per-tick running-app samples. Each tick yields zero
//     or more commands (SHOW_MESSAGE, KILL_PROCESS); a detected game's
//     kill always supersedes a pending nag for the same tick.
//   - Audio turn: ordered audio chunks buffered until is_final, then
//     transcribed and decided as one utterance. A turn cut off before
//     is_final is discarded without a response.
//
// The external classifier, generator, and transcriber are the only
// suspension points; all other transitions are synchronous. Disconnect
// cancels the connection's context and with it any in-flight
// collaborator call attributable to that connection.
package ws
