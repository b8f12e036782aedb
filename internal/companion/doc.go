// Package companion carries app messages between the watchface and its
// companion application.
//
// # Bridges
//
// A Bridge sends outbound dictionaries and returns queued inbound ones.
// Two implementations exist:
//
//   - Client talks to a bridge process over HTTP. POST /api/appmessage
//     takes one dictionary as a JSON object keyed by decimal tuple keys;
//     GET /api/inbox returns {"messages": [...]} and empties the queue.
//   - Static runs in process and answers each weather refresh request with
//     a configured temperature and conditions. It stands in for the phone.
//
// Client accepts a host:port or URL; the scheme defaults to http and any
// path is discarded. Requests time out after 5 seconds and non-2xx/3xx
// statuses are returned as errors.
//
// # Receiver
//
// StartReceiver polls the bridge on its own goroutine and hands every
// message to the bounded appmsg.Inbox. Poll failures are logged and
// recorded in the state.Store; the loop keeps polling. Messages that do not
// fit the inbox are dropped and the inbox tells the event loop.
package companion
