package site

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
</head>
<body data-base="{{.BasePath}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title">{{.ProjectName}}</h2>
      <input type="text" id="search-input" placeholder="Search docs..." autocomplete="off">
      <ul class="search-results" id="search-results"></ul>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">&#9776;</button>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">&#9680;</button>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// cssContent is the stylesheet shared by every page.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #656d76;
  --border: #d0d7de;
  --accent: #0969da;
  --sidebar-bg: #f6f8fa;
  --code-bg: #f6f8fa;
}
[data-theme="dark"] {
  --bg: #0d1117;
  --fg: #e6edf3;
  --muted: #8d96a0;
  --border: #30363d;
  --accent: #4493f8;
  --sidebar-bg: #010409;
  --code-bg: #161b22;
}
* { box-sizing: border-box; }
body { margin: 0; display: flex; min-height: 100vh; background: var(--bg); color: var(--fg);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.6; }
a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
.sidebar { width: 280px; flex-shrink: 0; background: var(--sidebar-bg); border-right: 1px solid var(--border);
  height: 100vh; position: sticky; top: 0; overflow-y: auto; }
.sidebar-header { padding: 1rem; border-bottom: 1px solid var(--border); }
.project-title { margin: 0 0 .75rem; font-size: 1.1rem; }
#search-input { width: 100%; padding: .4rem .6rem; border: 1px solid var(--border); border-radius: 6px;
  background: var(--bg); color: var(--fg); }
.search-results { list-style: none; margin: .5rem 0 0; padding: 0; }
.search-results li { padding: .25rem 0; font-size: .9rem; }
.search-results .summary { display: block; color: var(--muted); font-size: .8rem; }
.sidebar-tree { padding: .5rem 1rem 2rem; font-size: .9rem; }
.sidebar-tree ul { list-style: none; margin: 0; padding-left: .9rem; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar-tree li.dir > ul { display: none; }
.sidebar-tree li.dir.expanded > ul { display: block; }
.dir-toggle { cursor: pointer; font-weight: 600; display: block; padding: .15rem 0; }
.dir-toggle::before { content: "\25B8"; display: inline-block; width: 1rem; transition: transform .15s; }
li.dir.expanded > .dir-toggle::before { transform: rotate(90deg); }
.sidebar-tree a { display: block; padding: .15rem 0; color: var(--fg); }
.sidebar-tree a.active { color: var(--accent); font-weight: 600; }
.content { flex: 1; min-width: 0; }
.top-bar { display: flex; justify-content: space-between; padding: .5rem 1rem; border-bottom: 1px solid var(--border); }
.top-bar button { background: none; border: none; color: var(--fg); font-size: 1.2rem; cursor: pointer; }
.menu-toggle { visibility: hidden; }
.page-content { max-width: 52rem; padding: 2rem 2.5rem 4rem; }
.page-content pre { background: var(--code-bg); padding: 1rem; border-radius: 6px; overflow-x: auto; }
.page-content code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: .875em; }
.page-content table { border-collapse: collapse; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: .4rem .8rem; }
.mermaid { margin: 1rem 0; }
@media (max-width: 800px) {
  .sidebar { position: fixed; left: -280px; z-index: 10; transition: left .2s; }
  .sidebar.open { left: 0; }
  .menu-toggle { visibility: visible; }
  .page-content { padding: 1.5rem 1rem; }
}
`

// jsContent wires the sidebar, theme toggle and client-side search.
const jsContent = `(function() {
  var base = document.body.getAttribute('data-base') || '';

  document.querySelectorAll('.dir-toggle').forEach(function(el) {
    el.addEventListener('click', function() { el.parentElement.classList.toggle('expanded'); });
  });

  var menu = document.getElementById('menu-toggle');
  if (menu) {
    menu.addEventListener('click', function() {
      document.getElementById('sidebar').classList.toggle('open');
    });
  }

  var root = document.documentElement;
  var saved = localStorage.getItem('arcdocs-theme');
  if (saved) { root.setAttribute('data-theme', saved); }
  var theme = document.getElementById('theme-toggle');
  if (theme) {
    theme.addEventListener('click', function() {
      var next = root.getAttribute('data-theme') === 'dark' ? 'light' : 'dark';
      root.setAttribute('data-theme', next);
      localStorage.setItem('arcdocs-theme', next);
    });
  }

  if (window.mermaid) { window.mermaid.initialize({ startOnLoad: true }); }

  var input = document.getElementById('search-input');
  var results = document.getElementById('search-results');
  var index = null;
  function load() {
    if (index) { return Promise.resolve(index); }
    return fetch(base + 'search-index.json').then(function(r) { return r.json(); })
      .then(function(data) { index = data || []; return index; });
  }
  function render(hits) {
    results.innerHTML = '';
    hits.slice(0, 10).forEach(function(e) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = base + e.path;
      a.textContent = e.title;
      li.appendChild(a);
      if (e.summary) {
        var s = document.createElement('span');
        s.className = 'summary';
        s.textContent = e.summary;
        li.appendChild(s);
      }
      results.appendChild(li);
    });
  }
  if (input) {
    input.addEventListener('input', function() {
      var q = input.value.trim().toLowerCase();
      if (!q) { results.innerHTML = ''; return; }
      load().then(function(entries) {
        render(entries.filter(function(e) {
          return (e.title + ' ' + e.content).toLowerCase().indexOf(q) !== -1;
        }));
      });
    });
  }
})();
`
