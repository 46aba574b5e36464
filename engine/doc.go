/*
Package engine contains the voice allocation and block rendering core of a
polyphonic synthesizer.

An Engine owns a fixed pool of identical voice units (polyvoice.VoiceUnit). The
VoiceManager decides which voice slot plays which note and steals voices when
the pool is exhausted: a free voice is preferred, then the oldest releasing
voice, then the oldest active voice. The Router translates note, controller and
parameter events into VoiceManager operations and parameter writes. Once per
block, Engine.RenderBlock applies the queued events, computes every non-free
voice, mixes them into the master channels and returns silent releasing voices
to the pool.

All voice state and all voice parameters are mutated only by the goroutine
calling RenderBlock. Other goroutines talk to the engine through Poly, which
posts events into a lock-free EventQueue and reads parameter values from
atomically published shadows. Problems detected on the render goroutine
(dropped notes, unknown note-offs, queue overflows) are sent without blocking
to the Broker as Diagnostics; LogDiagnostics prints them from a goroutine of
its own.
*/
package engine
