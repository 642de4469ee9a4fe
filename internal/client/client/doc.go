// Package client contains the network boundary of the IgniteGym client.
//
// # Overview
//
//  1. A transport-agnostic API contract (AuthClient, CatalogClient, Client)
//     mirroring the remote endpoints: POST /sessions, POST /users, PUT /users,
//     GET /groups, GET /exercises/bygroup/{group}, GET /exercises/{id},
//     POST /history and GET /history.
//  2. An HTTP/JSON implementation (HTTPClient) that injects the bearer token
//     through its transport, tags every request with an X-Request-ID and turns
//     every failure into an already classified *apperr.Error.
//  3. Local database bootstrap (InitDatabase, RunMigrations) applying the
//     embedded goose migrations to the SQLite file.
//
// # Error Handling
//
// Responses with a non-2xx status and a {"message": ...} body become
// apperr.KindDomain errors carrying the server message. Transport failures,
// bodies without a message and undecodable payloads become apperr.KindUnknown
// with an operation-specific fallback. Callers only render these values.
package client
