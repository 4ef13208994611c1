package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/urizennnn/geocommit-scanner/github"
)

// ProfileSource answers profile details for logins that already went
// through the resolver. The run's contributor cache satisfies it.
type ProfileSource interface {
	Get(login string) (*github.Profile, bool)
}

var header = []string{"login", "name", "commit_count", "url"}

// Writer serializes one Result per file, named after the repository's
// display name, one row per matching contributor sorted by login.
type Writer struct {
	profiles ProfileSource
	dir      string
	format   string
}

func New(profiles ProfileSource, dir, format string) *Writer {
	return &Writer{profiles: profiles, dir: dir, format: format}
}

func (w *Writer) Write(res *github.Result) (string, error) {
	if w.format == "xlsx" {
		return w.writeXLSX(res)
	}
	return w.writeCSV(res)
}

func (w *Writer) writeCSV(res *github.Result) (string, error) {
	path := filepath.Join(w.dir, fileBase(res)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", err
	}
	for _, row := range w.rows(res) {
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) writeXLSX(res *github.Result) (string, error) {
	path := filepath.Join(w.dir, fileBase(res)+".xlsx")
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return "", err
	}
	for i, row := range w.rows(res) {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return "", err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) rows(res *github.Result) [][]string {
	logins := make([]string, 0, len(res.Commiters))
	for login := range res.Commiters {
		logins = append(logins, login)
	}
	sort.Strings(logins)

	rows := make([][]string, 0, len(logins))
	for _, login := range logins {
		count := strconv.Itoa(res.Commiters[login])
		profile, ok := w.profiles.Get(login)
		if !ok {
			// Evicted from the cache between resolution and export.
			logrus.WithField("login", login).Warn("profile missing at export time")
			rows = append(rows, []string{login, "", count, ""})
			continue
		}
		rows = append(rows, []string{profile.Login, profile.Name, count, profile.HTMLURL})
	}
	return rows
}

func fileBase(res *github.Result) string {
	name := res.Name
	if name == "" {
		name = strings.ReplaceAll(res.Repo, "/", "-")
	}
	return name
}
