package mysql

const createDocumentsSQL = `
CREATE TABLE IF NOT EXISTS documents (
  path        VARCHAR(512)  NOT NULL,
  collection  VARCHAR(128)  NOT NULL,
  doc_id      VARCHAR(255)  NOT NULL,
  parent_path VARCHAR(512)  NOT NULL DEFAULT '',
  fields      LONGTEXT      NOT NULL,
  updated_at  DATETIME(6)   NOT NULL,
  PRIMARY KEY (path),
  INDEX documents_parent (collection, parent_path, doc_id)
) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin
`

// VALUES(col) keeps the statement valid on 5.7 and 8.0.
const upsertDocumentSuffix = `ON DUPLICATE KEY UPDATE
  fields     = VALUES(fields),
  updated_at = VALUES(updated_at)`
