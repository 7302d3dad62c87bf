package sqlite

import "encoding/json"

const schema = `
	CREATE TABLE IF NOT EXISTS trawl_checkpoints (
		flow_id         TEXT PRIMARY KEY,
		next_seq        INTEGER NOT NULL DEFAULT 0,
		filter          BLOB,
		running_handles TEXT NOT NULL DEFAULT '[]',
		updated_at      TEXT NOT NULL
	)`

// Running handles are stored as a JSON array in a TEXT column.

func encodeHandles(handles []string) (string, error) {
	if handles == nil {
		handles = []string{}
	}
	data, err := json.Marshal(handles)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeHandles(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var handles []string
	if err := json.Unmarshal([]byte(data), &handles); err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, nil
	}
	return handles, nil
}
