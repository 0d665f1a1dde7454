// Package api exposes the account and property listing services over HTTP.
// Handlers decode requests, call a service, and funnel every failure through
// HandleAPIError so that the status code and client message are decided in
// one place.
package api
