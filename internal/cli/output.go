package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"accounts-server/internal/account"
)

func printJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printAccount(w io.Writer, format string, a *account.Account) error {
	if format == "json" {
		return printJSON(w, a)
	}
	_, err := fmt.Fprintf(w, "ID:      %s\nName:    %s\nEmail:   %s\nRole:    %s\nBalance: %s\nCreated: %s\n",
		a.ID, a.Name, a.Email, a.Role, a.Balance, a.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return err
}
