package latex

import "html"

// Wrap embeds a translated fragment in a complete HTML document carrying the
// print stylesheet used for page rendering.
func Wrap(content, title string) string {
	if title == "" {
		title = DefaultTitle
	}
	return `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>` + html.EscapeString(title) + `</title>
    <style>` + stylesheet + `</style>
</head>
<body>
    ` + content + `
</body>
</html>`
}

const stylesheet = `
        @page {
            size: A4;
            margin: 0;
        }

        * {
            box-sizing: border-box;
        }

        body {
            font-family: 'Times New Roman', serif;
            font-size: 11pt;
            line-height: 1.4;
            color: #000;
            margin: 0;
            padding: 0.75in;
            background: white;
            -webkit-print-color-adjust: exact;
            print-color-adjust: exact;
        }

        .center {
            text-align: center;
            margin-bottom: 1.5em;
        }

        h1 {
            font-size: 18pt;
            font-weight: bold;
            margin: 0;
            padding: 0;
        }

        h2 {
            font-size: 14pt;
            font-weight: bold;
            margin: 1.2em 0 0.6em 0;
            padding-bottom: 3pt;
            border-bottom: 1pt solid #000;
            page-break-after: avoid;
        }

        h3 {
            font-size: 12pt;
            font-weight: bold;
            margin: 0.8em 0 0.3em 0;
            page-break-after: avoid;
            display: flex;
            justify-content: space-between;
            align-items: baseline;
        }

        p {
            margin: 0.4em 0;
        }

        ul, ol {
            margin: 0.3em 0 0.8em 0;
            padding-left: 1.2em;
        }

        li {
            margin: 0.15em 0;
        }

        strong {
            font-weight: bold;
        }

        em {
            font-style: italic;
        }

        a {
            color: #0066cc;
            text-decoration: none;
        }

        code {
            font-family: 'Courier New', monospace;
            background-color: #f5f5f5;
            padding: 1pt 2pt;
            border-radius: 2pt;
        }

        .date-range {
            font-weight: normal;
            font-size: 10pt;
            color: #666;
        }

        .company-name,
        .institution {
            font-style: italic;
            margin-bottom: 0.3em;
            color: #333;
        }

        .experience-item,
        .education-item,
        .project-item {
            margin-bottom: 1em;
            page-break-inside: avoid;
        }

        .technologies {
            margin-top: 0.3em;
            font-size: 10pt;
        }

        @media print {
            body {
                -webkit-print-color-adjust: exact;
                print-color-adjust: exact;
            }
        }
    `
