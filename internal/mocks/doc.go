// Package mocks provides centralized mock implementations for testing.
//
// Stores are mocked with testify/mock so tests can assert on calls and
// arguments. The auth collaborators and the listing cache use function
// fields with default values, which keeps simple tests short:
//
//	jwtSvc := &mocks.MockJWTService{Token: "signed"}
//	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
package mocks
