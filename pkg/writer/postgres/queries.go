package postgres

const upsertResult = `
INSERT INTO report_results (uuid, run_id, history_id, name, full_name, status, stage, started_at, stopped_at, document)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (uuid) DO UPDATE
SET run_id = EXCLUDED.run_id,
    history_id = EXCLUDED.history_id,
    name = EXCLUDED.name,
    full_name = EXCLUDED.full_name,
    status = EXCLUDED.status,
    stage = EXCLUDED.stage,
    started_at = EXCLUDED.started_at,
    stopped_at = EXCLUDED.stopped_at,
    document = EXCLUDED.document`

const deleteResultLabels = `DELETE FROM report_result_labels WHERE result_uuid = $1`

var resultLabelCopyColumns = []string{"result_uuid", "position", "name", "value"}

const upsertContainer = `
INSERT INTO report_containers (uuid, run_id, name, started_at, stopped_at, document)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (uuid) DO UPDATE
SET run_id = EXCLUDED.run_id,
    name = EXCLUDED.name,
    started_at = EXCLUDED.started_at,
    stopped_at = EXCLUDED.stopped_at,
    document = EXCLUDED.document`

const deleteContainerChildren = `DELETE FROM report_container_children WHERE container_uuid = $1`

const insertContainerChildBatch = `
INSERT INTO report_container_children (container_uuid, child_kind, position, child_uuid)
VALUES ($1, $2, $3, $4)`

const upsertAttachment = `
INSERT INTO report_attachments (run_id, name, content)
VALUES ($1, $2, $3)
ON CONFLICT (run_id, name) DO UPDATE
SET content = EXCLUDED.content`

const deleteEnvironment = `DELETE FROM report_environment WHERE run_id = $1`

const insertEnvironmentBatch = `
INSERT INTO report_environment (run_id, key, value)
VALUES ($1, $2, $3)`

const deleteCategories = `DELETE FROM report_categories WHERE run_id = $1`

const insertCategoryBatch = `
INSERT INTO report_categories (run_id, position, name, document)
VALUES ($1, $2, $3, $4)`

const selectResultDocument = `SELECT document FROM report_results WHERE uuid = $1`

const selectContainerDocument = `SELECT document FROM report_containers WHERE uuid = $1`

const selectAttachment = `SELECT content FROM report_attachments WHERE run_id = $1 AND name = $2`
