package server

import "html/template"

var formTemplate = template.Must(template.New("form").Parse(`<!doctype html>
<html lang="en">

<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Markdown to HTML</title>
    <style>
        * {
            box-sizing: border-box;
        }

        body {
            font-family: sans-serif;
            font-size: 16px;
            background: #1f1f1f;
            padding: 1.5rem 3rem;
            margin: 0 auto;
            color: #d4d4d4;
            max-width: 1280px;
        }

        a {
            color: #46a143;
            text-decoration: none;
        }

        a:hover {
            text-decoration: underline;
        }

        .title {
            text-align: center;
            color: #46a143;
            margin-bottom: 0;
        }

        .description {
            text-align: center;
        }

        .container {
            padding: 1rem 0;
            display: flex;
            justify-content: center;
            gap: 2rem;
        }

        form,
        .result {
            min-height: 450px;
            max-height: 75vh;
            max-width: 900px;
            min-width: 340px;
            margin: 0 auto;
            flex: 1;
            display: flex;
            flex-direction: column;
            border: 1px solid #525252;
            border-radius: 1rem;
        }

        form {
            overflow: auto;
        }

        textarea {
            flex: 1;
            color: #d4d4d4;
            background: #111;
            font-family: monospace;
            font-size: .9rem;
            padding: 1rem;
            resize: none;
            outline: none;
            border: none;
        }

        button {
            width: 100%;
            padding: .5rem;
            font-size: 1rem;
            background: #367d34;
            color: inherit;
            border: none;
            cursor: pointer;
            border-radius: 0 0 1rem 1rem;
        }

        button:hover {
            background: #46a143;
        }

        .result {
            background: #111;
        }

        .tabs,
        label {
            display: flex;
            border-bottom: 1px solid #525252;
        }

        .tab,
        label {
            background: transparent;
            padding: .5rem 1rem;
            border-radius: 1rem 1rem 0 0;
        }

        .tab.active,
        label {
            background: #333;
        }

        .tab-content {
            display: none;
            padding: 1rem;
            overflow: auto;
        }

        .tab-content.active {
            display: block;
        }

        pre {
            margin: 0;
            font-family: monospace;
            font-size: .9rem;
            white-space: pre-wrap;
        }

        table {
            border-collapse: collapse;
            width: 100%;
        }

        th, td {
            border: 1px solid #999;
            padding: 6px 10px;
            text-align: left;
        }

        @media screen and (max-width: 768px) {
            .container {
                display: block;
            }

            .result {
                margin-top: 2rem;
            }
        }
    </style>
</head>

<body>
    <h1 class="title">Markdown to HTML</h1>
    <p class="description">Paste or type your Markdown text to view the HTML output.</p>
    <div class="container">
        <form method="post">
            <label for="md">Markdown input:</label>
            <textarea name="md" id="md" placeholder="Input markdown text">{{.Markdown}}</textarea>
            <div><button type="submit">Convert</button></div>
        </form>

        {{if .HasResult}}
        <div class="result">
            <div class="tabs">
                <button class="tab active" onclick="openTab(event, 'preview')">Preview</button>
                <button class="tab" onclick="openTab(event, 'raw')">Raw HTML</button>
            </div>
            <div id="preview" class="tab-content active">
                <div class="preview">{{.Preview}}</div>
            </div>
            <div id="raw" class="tab-content">
                <pre>{{.Raw}}</pre>
            </div>
        </div>
        {{end}}
    </div>

    <script>
        function openTab(evt, tabName) {
            const tabs = document.querySelectorAll('.tab-content');
            tabs.forEach(tab => tab.classList.remove('active'));
            document.getElementById(tabName).classList.add('active');

            const btns = document.querySelectorAll('.tab');
            btns.forEach(btn => btn.classList.remove('active'));
            evt.currentTarget.classList.add('active');
        }
    </script>
</body>

</html>`))

type formData struct {
	Markdown  string
	HasResult bool
	// Preview embeds the rendered page as-is; Raw is the same markup shown
	// escaped by the template.
	Preview template.HTML
	Raw     string
}
