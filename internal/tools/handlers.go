package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/realtime"
)

func builtinTools(deps Deps) []Tool {
	return []Tool{
		{
			Name:        "calculate_date",
			Description: "相対的な日付表現（「明日」「来週」など）を正確な日付（YYYY-MM-DD形式）に変換する。",
			Parameters: realtime.ToolParameters{
				Type: "object",
				Properties: map[string]realtime.ToolProperty{
					"relative_expression": {
						Type:        "string",
						Description: "相対的な日付表現（例：明日、明後日、3日後）",
					},
				},
				Required: []string{"relative_expression"},
			},
			Handler: calculateDateHandler(deps),
			Respond: true,
		},
		{
			Name:        "check_availability",
			Description: "指定された日付と時間に担当者が面談可能かどうかを確認する。必ずYYYY-MM-DD形式の日付を渡すこと。",
			Parameters: realtime.ToolParameters{
				Type: "object",
				Properties: map[string]realtime.ToolProperty{
					"date": {
						Type:        "string",
						Description: "確認したい日付。必ずYYYY-MM-DD形式で指定（例: 2025-12-20）",
					},
					"time": {
						Type:        "string",
						Description: "確認したい時間（オプション）。HH:00形式で指定（例: 13:00、15:00）",
					},
				},
				Required: []string{"date"},
			},
			Handler: checkAvailabilityHandler(deps),
			Respond: true,
		},
		{
			Name:        "save_appointment",
			Description: "面談の予約を確定し保存する。すべての伝言をまとめて1回だけ呼び出すこと。",
			Parameters: realtime.ToolParameters{
				Type: "object",
				Properties: map[string]realtime.ToolProperty{
					"date": {
						Type:        "string",
						Description: "面談日付（YYYY-MM-DD形式、例: 2025-12-21）",
					},
					"time": {
						Type:        "string",
						Description: "面談時間（HH:00形式、例: 13:00）",
					},
					"messages": {
						Type:        "string",
						Description: "担当者への伝言（複数ある場合は改行で区切る。なければ空文字）",
					},
				},
				Required: []string{"date", "time"},
			},
			Handler: saveAppointmentHandler(deps),
			Respond: true,
		},
		{
			Name:        "save_callback",
			Description: "ユーザーが今時間がないと言った場合、再架電の日時を保存する。",
			Parameters: realtime.ToolParameters{
				Type: "object",
				Properties: map[string]realtime.ToolProperty{
					"callback_date": {
						Type:        "string",
						Description: "再架電希望日付（YYYY-MM-DD形式、例: 2025-12-20）",
					},
					"callback_time": {
						Type:        "string",
						Description: "再架電希望時間（HH:00形式、例: 18:00）、指定がなければ空文字",
					},
					"note": {
						Type:        "string",
						Description: "備考（例：夕方以降なら可、など。なければ空文字）",
					},
				},
				Required: []string{"callback_date"},
			},
			Handler: saveCallbackHandler(deps),
			Respond: true,
		},
		{
			Name:        "end_call",
			Description: "通話を終了する。重要：必ず「さようなら」やお別れの挨拶を言い終わってから、このツールを呼び出すこと。挨拶を言う前に呼び出さないこと。",
			Parameters: realtime.ToolParameters{
				Type:       "object",
				Properties: map[string]realtime.ToolProperty{},
				Required:   []string{},
			},
			Handler: endCallHandler(deps),
			Respond: false,
		},
	}
}

func calculateDateHandler(deps Deps) HandlerFunc {
	return func(ctx context.Context, args json.RawMessage) (string, error) {
		var req struct {
			RelativeExpression string `json:"relative_expression"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("failed to parse calculate_date arguments: %w", err)
		}

		return resolveRelativeDate(req.RelativeExpression, deps.Now().In(deps.Location)), nil
	}
}

func checkAvailabilityHandler(deps Deps) HandlerFunc {
	return func(ctx context.Context, args json.RawMessage) (string, error) {
		var req struct {
			Date string `json:"date"`
			Time string `json:"time"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("failed to parse check_availability arguments: %w", err)
		}
		if req.Date == "" {
			return badDateFormat, nil
		}

		return checkAvailability(req.Date, req.Time, deps.ClosedWeekdays), nil
	}
}

func saveAppointmentHandler(deps Deps) HandlerFunc {
	return func(ctx context.Context, args json.RawMessage) (string, error) {
		var req struct {
			Date     string `json:"date"`
			Time     string `json:"time"`
			Messages string `json:"messages"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("failed to parse save_appointment arguments: %w", err)
		}
		if req.Date == "" || req.Time == "" {
			return "日付と時間の両方を指定してください。", nil
		}

		record := &AppointmentRecord{
			StreamSID: deps.Call.StreamSID(),
			Date:      req.Date,
			Time:      req.Time,
			Messages:  req.Messages,
			CreatedAt: deps.Now().In(deps.Location),
		}
		if _, err := deps.Appointments.Append(record); err != nil {
			return "", fmt.Errorf("failed to save appointment: %w", err)
		}

		return fmt.Sprintf("予約を確定しました。%s %sで登録いたしました。", req.Date, req.Time), nil
	}
}

func saveCallbackHandler(deps Deps) HandlerFunc {
	return func(ctx context.Context, args json.RawMessage) (string, error) {
		var req struct {
			CallbackDate string `json:"callback_date"`
			CallbackTime string `json:"callback_time"`
			Note         string `json:"note"`
		}
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("failed to parse save_callback arguments: %w", err)
		}
		if req.CallbackDate == "" {
			return "再架電の希望日を指定してください。", nil
		}

		record := &CallbackRecord{
			StreamSID: deps.Call.StreamSID(),
			Date:      req.CallbackDate,
			Time:      req.CallbackTime,
			Note:      req.Note,
			CreatedAt: deps.Now().In(deps.Location),
		}
		if _, err := deps.Callbacks.Append(record); err != nil {
			return "", fmt.Errorf("failed to save callback: %w", err)
		}

		return fmt.Sprintf("再架電を%sに設定いたしました。", req.CallbackDate), nil
	}
}

func endCallHandler(deps Deps) HandlerFunc {
	return func(ctx context.Context, args json.RawMessage) (string, error) {
		// The farewell is expected to already be in flight; the bridge
		// closes the legs only after it finishes playing out.
		deps.Call.RequestEnd()
		return "", nil
	}
}
