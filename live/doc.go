// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package live implements the subscription registry and broadcast engine
behind the per-poll event streams.

# Registry

[Registry] maps each poll to its set of live [Subscription] handles. Locking
is per poll: publishing to one poll never serializes against another.
Delivery is non-blocking from the publisher's perspective; a subscriber that
has stopped draining its buffer only degrades its own stream and is pruned.

# Engine

[Engine] sits behind the [Broadcaster] seam. On every accepted vote it fans
the fresh snapshot out to the poll's subscribers; per subscription it emits
keep-alive markers so intermediaries do not silently time the connection
out. New subscribers get one immediate snapshot before any broadcast
reaches them.

Fan-out is in-process only. Subscribers held by another process are not
reached; that is the registry's known limitation, and the Broadcaster seam
is where an external pub/sub layer would slot in.
*/
package live
