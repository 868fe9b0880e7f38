package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"formdiff/internal/batch"
	"formdiff/internal/compare"
	"formdiff/internal/version"
)

// ImagesDir is the folder, next to the HTML file, receiving image copies.
const ImagesDir = "report_images"

type htmlItem struct {
	Index  int
	Result compare.Result
	Notes  []htmlNote
	Image1 string
	Image2 string
}

type htmlNote struct {
	Class string
	Text  string
}

type htmlPage struct {
	Version   string
	RunID     string
	Generated string
	FolderA   string
	FolderB   string
	Total     int
	Passed    int
	Failed    int
	Items     []htmlItem
	Failures  []batch.Failure
	Missing   []string
}

// SaveHTML writes an HTML report to path and copies every compared image
// into report_images/version1 and report_images/version2 beside it.
func SaveHTML(path string, rep *batch.Report) error {
	root := filepath.Dir(path)
	v1 := filepath.Join(root, ImagesDir, "version1")
	v2 := filepath.Join(root, ImagesDir, "version2")
	for _, dir := range []string{v1, v2} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create image folder: %w", err)
		}
	}

	for _, r := range rep.Results {
		if err := copyFile(filepath.Join(rep.FolderA, r.ImageName), filepath.Join(v1, r.ImageName)); err != nil {
			return err
		}
		if err := copyFile(filepath.Join(rep.FolderB, r.ImageName), filepath.Join(v2, r.ImageName)); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteHTML(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteHTML renders the report page. Image links point into ImagesDir.
func WriteHTML(w io.Writer, rep *batch.Report) error {
	page := htmlPage{
		Version:   version.String(),
		RunID:     rep.RunID,
		Generated: rep.Started.Format(time.RFC1123),
		FolderA:   rep.FolderA,
		FolderB:   rep.FolderB,
		Total:     len(rep.Results),
		Passed:    rep.Passed(),
		Failed:    rep.Failed(),
		Failures:  rep.Failures,
		Missing:   rep.Missing,
	}
	for i, r := range rep.Results {
		page.Items = append(page.Items, htmlItem{
			Index:  i,
			Result: r,
			Notes:  notes(r),
			Image1: ImagesDir + "/version1/" + r.ImageName,
			Image2: ImagesDir + "/version2/" + r.ImageName,
		})
	}

	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// notes styles each text difference line. Reviewer hints render as info,
// review requests as warnings.
func notes(r compare.Result) []htmlNote {
	var out []htmlNote
	for _, d := range r.TextDifferences {
		class := "difference"
		lower := strings.ToLower(d)
		switch {
		case strings.Contains(d, "Click images"):
			class = "difference info"
		case strings.Contains(lower, "review"):
			class = "difference warning"
		}
		out = append(out, htmlNote{Class: class, Text: d})
	}
	if !r.FocusMatch && r.FocusDetails.Message != "" {
		out = append(out, htmlNote{Class: "difference info", Text: "Focus: " + r.FocusDetails.Message})
	}
	for _, fd := range r.FieldDifferences {
		out = append(out, htmlNote{Class: "difference field", Text: fd.Description})
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to copy image: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to copy image: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy image: %w", err)
	}
	return out.Close()
}

var pageTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"status": func(ok bool) string {
		if ok {
			return "pass"
		}
		return "fail"
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
	"lower": strings.ToLower,
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Form Screenshot Comparison Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; background: #f5f6fa; margin: 0; color: #222; }
.header { background: #4b5bd6; color: white; padding: 24px 32px; }
.header p { margin: 4px 0 0; opacity: .85; font-size: 13px; }
.controls { display: flex; gap: 12px; align-items: center; padding: 16px 32px; background: white; border-bottom: 1px solid #e0e0e0; }
.filter-btn { padding: 8px 16px; border: 2px solid #e0e0e0; background: white; border-radius: 6px; cursor: pointer; font-weight: 600; }
.filter-btn.active { background: #4b5bd6; color: white; border-color: #4b5bd6; }
.search-box { padding: 8px 12px; border: 2px solid #e0e0e0; border-radius: 6px; min-width: 240px; }
.summary { display: flex; gap: 16px; padding: 16px 32px; }
.summary-card { background: white; border-radius: 8px; padding: 12px 24px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.summary-card .number { font-size: 28px; font-weight: 700; }
.summary-card.passed .number { color: #2e9d5b; }
.summary-card.failed .number { color: #d64545; }
.comparison-list { padding: 0 32px 32px; }
.comparison-item { background: white; border-radius: 8px; margin-bottom: 12px; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.comparison-item.hidden { display: none; }
.comparison-header { display: flex; justify-content: space-between; align-items: center; padding: 12px 16px; cursor: pointer; }
.comparison-header h3 { margin: 0; font-size: 15px; }
.comparison-content { display: none; padding: 0 16px 16px; }
.comparison-item.expanded .comparison-content { display: block; }
.status { padding: 4px 10px; border-radius: 4px; font-weight: 700; font-size: 12px; }
.status.pass { background: #e3f6ea; color: #2e9d5b; }
.status.fail { background: #fbe5e5; color: #d64545; }
.details-row { display: flex; gap: 8px; font-size: 13px; margin: 4px 0; }
.details-label { font-weight: 600; min-width: 120px; }
.difference { font-size: 13px; padding: 6px 10px; margin: 4px 0; border-left: 3px solid #d64545; background: #fdf3f3; }
.difference.info { border-color: #4b5bd6; background: #f3f4fd; }
.difference.warning { border-color: #e0a030; background: #fdf8ef; }
.difference.field { border-color: #8a56c2; background: #f7f2fc; }
.images { display: flex; gap: 16px; margin-top: 12px; }
.image-container { flex: 1; }
.image-label { font-size: 12px; font-weight: 600; margin-bottom: 4px; }
.image-container img { width: 100%; border: 1px solid #e0e0e0; cursor: zoom-in; }
.problems { padding: 0 32px 32px; font-size: 13px; }
#noResults { display: none; text-align: center; color: #888; padding: 32px; }
</style>
</head>
<body>
<div class="header">
<h1>Form Screenshot Comparison Report</h1>
<p>{{.FolderA}} vs {{.FolderB}} &bull; {{.Total}} comparisons &bull; {{.Generated}} &bull; run {{.RunID}}</p>
</div>

<div class="controls">
<button class="filter-btn active" data-filter="all">All ({{.Total}})</button>
<button class="filter-btn" data-filter="pass">Passed ({{.Passed}})</button>
<button class="filter-btn" data-filter="fail">Failed ({{.Failed}})</button>
<button class="filter-btn" id="expandAll">Expand all</button>
<button class="filter-btn" id="collapseAll">Collapse all</button>
<input type="text" class="search-box" id="search" placeholder="Search by image name...">
</div>

<div class="summary">
<div class="summary-card total"><div>Total compared</div><div class="number">{{.Total}}</div></div>
<div class="summary-card passed"><div>Passed</div><div class="number">{{.Passed}}</div></div>
<div class="summary-card failed"><div>Failed</div><div class="number">{{.Failed}}</div></div>
</div>

<div class="comparison-list" id="comparisonList">
{{range .Items}}
<div class="comparison-item" data-status="{{status .Result.OverallMatch}}" data-name="{{lower .Result.ImageName}}" data-index="{{.Index}}">
<div class="comparison-header">
<h3>{{.Result.ImageName}}</h3>
<span class="status {{status .Result.OverallMatch}}">{{if .Result.OverallMatch}}PASS{{else}}FAIL{{end}}</span>
</div>
<div class="comparison-content">
<div class="details-row"><span class="details-label">Text match:</span><span>{{if .Result.TextMatch}}Match{{else}}Mismatch{{end}} ({{percent .Result.TextSimilarity}})</span></div>
<div class="details-row"><span class="details-label">Focus match:</span><span>{{if .Result.FocusMatch}}Match{{else}}Mismatch{{end}}</span></div>
{{with .Result.PerceptualDistance}}<div class="details-row"><span class="details-label">Perceptual distance:</span><span>{{.}}</span></div>{{end}}
{{range .Notes}}<div class="{{.Class}}">{{.Text}}</div>
{{end}}
<div class="images">
<div class="image-container"><div class="image-label">Version 1: {{$.FolderA}}</div><a href="{{.Image1}}" target="_blank"><img src="{{.Image1}}" alt="{{.Result.ImageName}} - Version 1"></a></div>
<div class="image-container"><div class="image-label">Version 2: {{$.FolderB}}</div><a href="{{.Image2}}" target="_blank"><img src="{{.Image2}}" alt="{{.Result.ImageName}} - Version 2"></a></div>
</div>
</div>
</div>
{{end}}
<div id="noResults">No matching results</div>
</div>

{{if or .Failures .Missing}}
<div class="problems">
{{if .Failures}}<h3>Could not compare</h3><ul>{{range .Failures}}<li>{{.Name}}: {{.Err}}</li>{{end}}</ul>{{end}}
{{if .Missing}}<h3>Missing from {{.FolderB}}</h3><ul>{{range .Missing}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}

<p class="problems">Generated by {{.Version}}</p>

<script>
(function () {
  var filter = 'all', search = '';
  var items = Array.prototype.slice.call(document.querySelectorAll('.comparison-item'));

  function apply() {
    var visible = 0;
    items.forEach(function (item) {
      var ok = (filter === 'all' || item.dataset.status === filter) &&
               (search === '' || item.dataset.name.indexOf(search) >= 0);
      item.classList.toggle('hidden', !ok);
      if (ok) visible++;
    });
    document.getElementById('noResults').style.display = visible === 0 ? 'block' : 'none';
  }

  document.querySelectorAll('[data-filter]').forEach(function (btn) {
    btn.addEventListener('click', function () {
      document.querySelectorAll('[data-filter]').forEach(function (b) { b.classList.remove('active'); });
      btn.classList.add('active');
      filter = btn.dataset.filter;
      apply();
    });
  });
  document.getElementById('search').addEventListener('keyup', function (e) {
    search = e.target.value.toLowerCase();
    apply();
  });
  document.querySelectorAll('.comparison-header').forEach(function (h) {
    h.addEventListener('click', function () { h.parentNode.classList.toggle('expanded'); });
  });
  document.getElementById('expandAll').addEventListener('click', function () {
    items.forEach(function (i) { if (!i.classList.contains('hidden')) i.classList.add('expanded'); });
  });
  document.getElementById('collapseAll').addEventListener('click', function () {
    items.forEach(function (i) { i.classList.remove('expanded'); });
  });
})();
</script>
</body>
</html>
`
