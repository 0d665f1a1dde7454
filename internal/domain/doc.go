// Package domain contains the core business entities of the listing service:
// accounts with their roles, and property listings with their status and
// soft-delete lifecycle. It is independent of any storage or transport.
package domain
