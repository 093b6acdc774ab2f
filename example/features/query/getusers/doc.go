// Package getusers implements the "Get Users" query use case.
//
// Users are loaded with their authentication and access rights and mapped to views.
// Loading never records domain events, so the views carry none.
package getusers
