package domain

import (
	"sort"
	"strings"
)

// Room is a chat channel. ParticipantIDs is the comma-joined set of user
// ids stored in the participant_ids column; Name and LastMessage are
// denormalized copies updated whenever a message is posted (Name becomes
// the last sender's username).
type Room struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ParticipantIDs string `json:"participant_ids"`
	LastMessage    string `json:"last_message"`
}

// RoomResponse pairs a room with the resolved user records for its
// participant ids. MissingParticipants lists ids that had no matching
// user row.
type RoomResponse struct {
	Room                Room     `json:"room"`
	Users               []User   `json:"users"`
	MissingParticipants []string `json:"missing_participants,omitempty"`
}

// Participants returns the user ids encoded in ParticipantIDs.
func (r *Room) Participants() []string {
	if r.ParticipantIDs == "" {
		return nil
	}
	return strings.Split(r.ParticipantIDs, ",")
}

// AddParticipant returns the participant csv with id included. The
// result is deduplicated and sorted, so re-adding an existing id is a
// no-op and repeated writes produce identical columns.
func AddParticipant(csv, id string) string {
	set := map[string]struct{}{id: {}}
	if csv != "" {
		for _, p := range strings.Split(csv, ",") {
			set[p] = struct{}{}
		}
	}

	ids := make([]string, 0, len(set))
	for p := range set {
		ids = append(ids, p)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
