package latex

// structureRules regroup the flat output produced for experience, education
// and project entries into containers the stylesheet targets. They expect
// whitespace to be collapsed already.
func structureRules() []Rule {
	return []Rule{
		replaceRule("experience-item", StageStructure,
			`(?s)<strong>([^<]+)</strong>\s*<span class="date-range">([^<]+)</span>\s*<br>\s*<em>([^<]+)</em>\s*<br>\s*<ul>(.*?)</ul>`,
			`<div class="experience-item"><h3>$1 <span class="date-range">$2</span></h3><div class="company-name">$3</div><ul>$4</ul></div>`),
		replaceRule("experience-item-bare", StageStructure,
			`<strong>([^<]+)</strong>\s*<span class="date-range">([^<]+)</span>\s*<br>\s*<em>([^<]+)</em>\s*<br>\s*(<div style="margin-bottom: [^"]*"></div>)`,
			`<div class="experience-item"><h3>$1 <span class="date-range">$2</span></h3><div class="company-name">$3</div></div>$4`),
		replaceRule("education-item", StageStructure,
			`<strong>([^<]+)</strong>\s*<span class="date-range">([^<]+)</span>\s*<br>\s*<em>([^<]+)</em>`,
			`<div class="education-item"><h3>$1 <span class="date-range">$2</span></h3><div class="institution">$3</div></div>`),
		replaceRule("project-item", StageStructure,
			`<strong>([^<]+)</strong>\s*<br>\s*([^<]*?)\s*<br>\s*<em>Technologies: ([^<]+)</em>`,
			`<div class="project-item"><h3>$1</h3><p>$2</p><div class="technologies"><em>Technologies: $3</em></div></div>`),
	}
}
