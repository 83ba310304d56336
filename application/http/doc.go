// Package http implements the wire side of HTTP/1.1 directly over a byte
// stream: framing one request off a connection, parsing it into a [Request],
// and serializing a [Response] back out. There is deliberately no keep-alive,
// chunked coding, or version negotiation: one request per connection,
// "Connection: close" always.
package http
