package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/rbacdash/internal/access"
	"github.com/dmitrijs2005/rbacdash/internal/models"
	"github.com/dmitrijs2005/rbacdash/internal/view"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderUsers prints the users table. The actions column is present only
// when the viewer may edit or delete.
func renderUsers(w io.Writer, rows []view.Row, perms access.Permissions) error {
	tw := newTable(w)

	header := []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}
	withActions := perms.CanEdit || perms.CanDelete
	if withActions {
		header = append(header, "ACTIONS")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range rows {
		cols := []string{r.ID, r.Name, r.Email, r.RoleName, r.Status()}
		if withActions {
			cols = append(cols, actions(perms))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

func actions(p access.Permissions) string {
	var out []string
	if p.CanEdit {
		out = append(out, "edit")
	}
	if p.CanDelete {
		out = append(out, "delete")
	}
	return strings.Join(out, " ")
}

func renderRoles(w io.Writer, roles, assignable []models.Role) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tASSIGNABLE")
	for _, r := range roles {
		mark := "no"
		for _, a := range assignable {
			if a.ID == r.ID {
				mark = "yes"
				break
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Name, mark)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
