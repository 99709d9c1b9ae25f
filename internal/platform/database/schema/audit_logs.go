package schema

// AuditLogsTable represents the append-only 'audit_logs' table
type AuditLogsTable struct {
	Table      string
	ID         string
	Action     string
	EntityType string
	EntityID   string
	Metadata   string
	ActorID    string
	CreatedAt  string
}

// AuditLogs is the schema definition for audit_logs
var AuditLogs = AuditLogsTable{
	Table:      "audit_logs",
	ID:         "id",
	Action:     "action",
	EntityType: "entity_type",
	EntityID:   "entity_id",
	Metadata:   "metadata",
	ActorID:    "actor_id",
	CreatedAt:  "created_at",
}
