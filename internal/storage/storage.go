// Package storage is the typed persistence layer over the datastore.
package storage

import (
	"fmt"
	"time"

	"jivebot/datastore"
)

const commandHistoryLimit = 20

// CommandRecord is one executed command, kept for per-guild history.
type CommandRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

// Storage wraps a DataStore with typed accessors.
type Storage struct {
	ds *datastore.DataStore
}

// New opens the store backing file at path.
func New(path string) (*Storage, error) {
	ds, err := datastore.New(path)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying store.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// RecordCommand appends one record to the guild's command history, trimming
// it to the newest commandHistoryLimit entries.
func (s *Storage) RecordCommand(guildID, channelID, userID, username, command string) error {
	history, err := s.CommandHistory(guildID)
	if err != nil {
		return err
	}

	history = append(history, CommandRecord{
		ChannelID: channelID,
		UserID:    userID,
		Username:  username,
		Command:   command,
		Datetime:  time.Now().UTC(),
	})
	if len(history) > commandHistoryLimit {
		history = history[len(history)-commandHistoryLimit:]
	}

	return s.ds.Set(historyKey(guildID), history)
}

// CommandHistory returns the guild's recorded commands, oldest first.
func (s *Storage) CommandHistory(guildID string) ([]CommandRecord, error) {
	var history []CommandRecord
	if _, err := s.ds.Get(historyKey(guildID), &history); err != nil {
		return nil, fmt.Errorf("load command history: %w", err)
	}
	return history, nil
}

func historyKey(guildID string) string {
	return "history:" + guildID
}
