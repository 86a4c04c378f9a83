package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"hogar/internal/core"
	ports "hogar/internal/sheets"
)

// Client mirrors household collections into a Google spreadsheet. Each
// mirror pass rewrites the whole tab so the sheet always matches the
// store, including deletions.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	expensesSheet string
	historySheet  string
}

// Ensure interface conformance
var (
	_ ports.ExpenseMirror = (*Client)(nil)
	_ ports.HistoryMirror = (*Client)(nil)
)

type Options struct {
	SpreadsheetID   string
	ExpensesSheet   string
	HistorySheet    string
	CredentialsJSON string
	CredentialsFile string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if opts.ExpensesSheet == "" {
		opts.ExpensesSheet = "Gastos"
	}
	if opts.HistorySheet == "" {
		opts.HistorySheet = "Recompensas"
	}

	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		expensesSheet: opts.ExpensesSheet,
		historySheet:  opts.HistorySheet,
	}, nil
}

// newSheetsService initializes a Sheets service using credentials from
// the options, falling back to GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	credsJSON := strings.TrimSpace(opts.CredentialsJSON)
	credsFile := strings.TrimSpace(opts.CredentialsFile)
	if credsJSON == "" && credsFile == "" {
		credsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case credsJSON != "":
		credentialsJSON = []byte(credsJSON)
	case credsFile != "":
		credentialsJSON, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
	default:
		return nil, errors.New("missing credentials (set CredentialsJSON, CredentialsFile or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

func (c *Client) MirrorExpenses(ctx context.Context, expenses []core.Expense) (string, error) {
	rows := make([][]any, 0, len(expenses)+1)
	rows = append(rows, []any{"Fecha", "Descripción", "Importe", "Asignado", "Compartido"})
	for _, e := range expenses {
		shared := "no"
		if e.IsShared {
			shared = "sí"
		}
		rows = append(rows, []any{
			e.Date.Format("2006-01-02"),
			e.Description,
			core.FormatAmount(e.Amount),
			e.Owner.String(),
			shared,
		})
	}
	return c.rewriteSheet(ctx, c.expensesSheet, rows)
}

func (c *Client) MirrorHistory(ctx context.Context, records []core.RedemptionRecord) (string, error) {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, []any{"Fecha", "Usuario", "Recompensa", "Descripción"})
	for _, rec := range records {
		rows = append(rows, []any{
			rec.RedeemedAt.Format("2006-01-02 15:04"),
			rec.User,
			rec.Title,
			rec.Description,
		})
	}
	return c.rewriteSheet(ctx, c.historySheet, rows)
}

func (c *Client) rewriteSheet(ctx context.Context, sheetName string, rows [][]any) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:Z", sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear %s: %w", clearRange, err)
	}

	writeRange := fmt.Sprintf("%s!A1", sheetName)
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("update %s: %w", writeRange, err)
	}

	ref := fmt.Sprintf("%s!A1:E%d", sheetName, len(rows))
	return ref, nil
}
