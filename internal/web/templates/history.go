package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/a-h/templ"
)

// HistoryRow is one line of the history list. CompareURL is empty for the
// oldest upload.
type HistoryRow struct {
	Item       equipment.HistoryItem
	Favorite   bool
	CompareURL string
}

const uploadForm = `<form method="post" action="/upload" enctype="multipart/form-data">` +
	`<input type="file" name="file" accept=".csv,text/csv" required> <button type="submit">Upload</button></form>`

// HistoryList renders the upload history, newest first, with a favorite
// toggle per item and a filter link.
func HistoryList(rows []HistoryRow, favoriteCount int, onlyFavorites bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}

		h.raw(uploadForm)
		h.raw(`<p>`)
		if onlyFavorites {
			h.raw(`<a href="/">Show all</a>`)
		} else {
			h.rawf(`<a href="/?favorites=1">Show favorites (%d)</a>`, favoriteCount)
		}
		h.raw(`</p>`)

		if len(rows) == 0 {
			h.raw(`<p>No uploads yet.</p>`)
			return h.err
		}

		h.raw(`<table><thead><tr><th></th><th>File</th><th>Uploaded</th><th></th></tr></thead><tbody>`)
		for _, row := range rows {
			id := strconv.FormatInt(row.Item.ID, 10)
			star := "☆"
			if row.Favorite {
				star = "★"
			}

			h.raw(`<tr><td><form method="post"`)
			h.attr("action", "/favorites/"+id)
			h.raw(`><button type="submit"`)
			h.attr("title", "Toggle favorite")
			h.raw(`>`)
			h.text(star)
			h.raw(`</button></form></td><td><a`)
			h.attr("href", "/history/"+id)
			h.raw(`>`)
			h.text(row.Item.File)
			h.raw(`</a></td><td>`)
			h.text(row.Item.UploadedAt.Format("2006-01-02 15:04:05"))
			h.raw(`</td><td>`)
			if row.CompareURL != "" {
				h.raw(`<a`)
				h.attr("href", row.CompareURL)
				h.raw(`>Compare with previous</a>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}
