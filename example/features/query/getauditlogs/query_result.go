package getauditlogs

// AuditLogs is the result of the Query: the stored lines in the order they were appended.
type AuditLogs struct {
	Logs []string `json:"logs"`
}
