// Package getauditlogs implements the "Get Audit Logs" query use case.
package getauditlogs
