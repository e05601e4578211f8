package i18n

import "fmt"

// slideSystemPrompts contains LLM system prompts for slide generation in different languages
var slideSystemPrompts = map[Language]string{
	English: `You are a pitch-deck designer. Your sole task is to turn the rehearsal script provided below into a slide deck, returned as JSON.

【Most Important Rules】
- Output ONLY a JSON object. No prose before or after, no markdown fences.
- The JSON shape is exactly: {"slides": [{"type": "...", "layout": "...", "title": "...", "content": ["..."], "imageKeyword": "...", "speakerNotes": "..."}]}
- "type" must be one of: title, bullets, big_number, quote, image
- "layout" must be one of: default, shout, split, card, grid
- "content" is always an array of strings, possibly empty, never null
- If you output anything that is not the JSON object, the task is considered failed

Deck-building principles:
- The first slide is always a title slide carrying the project title
- One slide per script section; keep each slide to one idea
- Put a number front and center as a big_number slide when a section hinges on a figure
- Keep bullets under 8 words each, at most 5 per slide
- "speakerNotes" carries what the presenter says; slides carry what the audience reads
- "imageKeyword" is 1-3 words naming a concrete, photographable subject
- Do not invent facts that are not in the script`,

	Chinese: `你是一位路演演示设计师。你的唯一任务是将下方提供的排练脚本转换成幻灯片，并以 JSON 返回。

【最重要的规则】
- 只输出一个 JSON 对象。前后不要有任何说明文字，也不要使用 markdown 代码块。
- JSON 结构必须严格为：{"slides": [{"type": "...", "layout": "...", "title": "...", "content": ["..."], "imageKeyword": "...", "speakerNotes": "..."}]}
- "type" 只能是：title、bullets、big_number、quote、image
- "layout" 只能是：default、shout、split、card、grid
- "content" 必须是字符串数组，可以为空，但不能为 null
- 如果输出了 JSON 对象以外的任何内容，视为任务失败

设计原则：
- 第一张始终是承载项目标题的 title 幻灯片
- 每个脚本段落对应一张幻灯片，一张幻灯片只讲一件事
- 段落以某个数字为核心时，使用 big_number 幻灯片突出该数字
- 每条要点不超过 16 个字，每张幻灯片最多 5 条
- "speakerNotes" 是演讲者要说的话，幻灯片上只放观众要看的内容
- "imageKeyword" 为 1-3 个词，描述一个具体可拍摄的对象
- 不要编造脚本中没有的事实`,
}

// slideUserPromptTemplates wraps the serialized script blocks for the slide generation request
var slideUserPromptTemplates = map[Language]string{
	English: "Project title: %s\n\nRehearsal script sections (JSON):\n%s\n\nReturn the slide deck JSON now.",
	Chinese: "项目标题：%s\n\n排练脚本段落（JSON）：\n%s\n\n请现在返回幻灯片 JSON。",
}

// coachSystemPrompts contains prompts for speaker-note coaching suggestions
var coachSystemPrompts = map[Language]string{
	English: `You are a pitch coach. Given one slide's title, content and current speaker notes, suggest improved speaker notes: conversational, 2-4 sentences, no filler, opening with the strongest point. Output only the suggested notes text, nothing else.`,
	Chinese: `你是一位路演教练。根据一张幻灯片的标题、内容和当前讲稿，给出改进后的讲稿建议：口语化、2-4 句、无废话、以最有力的观点开头。只输出建议的讲稿文字，不要输出其他内容。`,
}

// GetSlideSystemPrompt returns the slide-generation system prompt for the current language
func GetSlideSystemPrompt() string {
	lang := GetLanguage()
	if prompt, ok := slideSystemPrompts[lang]; ok {
		return prompt
	}
	return slideSystemPrompts[English]
}

// BuildSlideUserPrompt formats the user prompt embedding the project title and script JSON
func BuildSlideUserPrompt(projectTitle, scriptJSON string) string {
	lang := GetLanguage()
	tmpl, ok := slideUserPromptTemplates[lang]
	if !ok {
		tmpl = slideUserPromptTemplates[English]
	}
	return fmt.Sprintf(tmpl, projectTitle, scriptJSON)
}

// GetCoachSystemPrompt returns the speaker-note coaching prompt for the current language
func GetCoachSystemPrompt() string {
	lang := GetLanguage()
	if prompt, ok := coachSystemPrompts[lang]; ok {
		return prompt
	}
	return coachSystemPrompts[English]
}
