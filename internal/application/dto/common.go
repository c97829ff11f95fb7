package dto

import "time"

// ErrorResponse corps d'erreur HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkUpdateResult résultat d'une mise à jour en lot.
type BulkUpdateResult struct {
	Updated int64 `json:"updated"`
}

// MessageResponse corps de succès simple.
type MessageResponse struct {
	Message string `json:"message"`
}

// Formats de date acceptés dans les corps de requête (le front envoie une date
// simple, parfois avec l'heure).
var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

// ParseDate interprète une date reçue du front selon les formats acceptés.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
