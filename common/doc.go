// Package common provides the shared request pipeline used by service
// clients: a request descriptor, a composable interceptor chain that any
// transport-capable object can register rewrites against, and a concrete
// HTTP transport built on resty.
//
// Service objects never talk to the wire directly. They describe a request
// (method, path, params, body) and hand it to a Pipeline, which runs the
// registered interceptors and dispatches through a Transport. Tests swap
// the Transport for a fake.
package common
