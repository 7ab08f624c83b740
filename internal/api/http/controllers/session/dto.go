package session

import "deskCalc/internal/domain"

// PressRequest — клавиши для POST /api/v1/sessions/:id/keys.
type PressRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

// StateDTO — скалярные поля машины.
type StateDTO struct {
	CurrentEntry     string  `json:"current_entry"`
	PendingOperand   float64 `json:"pending_operand"`
	PendingOperator  string  `json:"pending_operator,omitempty"`
	AwaitingNewEntry bool    `json:"awaiting_new_entry"`
}

// RecordDTO — запись истории.
type RecordDTO struct {
	Operand1 float64 `json:"operand1"`
	Operator string  `json:"operator"`
	Operand2 float64 `json:"operand2"`
	Result   float64 `json:"result"`
	Text     string  `json:"text"`
}

// SessionResponse — всё, что нужно нарисовать клиенту.
type SessionResponse struct {
	ID            string      `json:"id"`
	State         StateDTO    `json:"state"`
	Display       string      `json:"display"`
	OperationLine string      `json:"operation_line"`
	History       []RecordDTO `json:"history"`
	Error         string      `json:"error,omitempty"`
}

func toResponse(v domain.SessionView) SessionResponse {
	history := make([]RecordDTO, len(v.History))
	for i, r := range v.History {
		history[i] = RecordDTO{
			Operand1: r.Operand1,
			Operator: string(r.Operator),
			Operand2: r.Operand2,
			Result:   r.Result,
			Text:     r.String(),
		}
	}
	return SessionResponse{
		ID: v.ID,
		State: StateDTO{
			CurrentEntry:     v.State.CurrentEntry,
			PendingOperand:   v.State.PendingOperand,
			PendingOperator:  string(v.State.PendingOperator),
			AwaitingNewEntry: v.State.AwaitingNewEntry,
		},
		Display:       v.Display,
		OperationLine: v.OperationLine,
		History:       history,
		Error:         v.Error,
	}
}
