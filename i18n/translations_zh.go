package i18n

var chineseTranslations = map[string]string{
	// Deck store / controller
	"deck.empty":                "演示文稿为空",
	"deck.slide_not_found":      "未找到幻灯片 %d",
	"deck.index_out_of_range":   "幻灯片编号 %d 超出范围（1-%d）",
	"deck.reorder_out_of_range": "无法移动幻灯片：位置超出范围",
	"deck.externally_driven":    "导航由同步的排练界面控制",
	"deck.generation_in_flight": "幻灯片生成正在进行中",
	"deck.export_in_flight":     "导出正在进行中",
	"deck.import_in_flight":     "导入正在进行中",
	"deck.cleared":              "已清空演示文稿",
	"deck.autosave_failed":      "自动保存失败：%s",

	// Generation
	"gen.no_blocks":       "脚本中没有可用的段落",
	"gen.ai_failed":       "AI 生成失败，已改用本地方式生成",
	"gen.model_not_ready": "AI 模型未配置，请检查设置",
	"gen.success":         "已生成 %d 张幻灯片",

	// Import
	"import.open_title":        "导入演示文稿",
	"import.success":           "已导入 %d 张幻灯片",
	"import.cancelled":         "已取消导入",
	"import.invalid_json":      "无效的演示文稿文件：%s",
	"import.pack_failed":       "无法读取演示包：%s",
	"import.pack_bad_password": "演示包密码错误",

	// Export
	"export.save_title":   "导出演示文稿",
	"export.success":      "已导出到 %s",
	"export.cancelled":    "已取消导出",
	"export.failed":       "导出失败：%s",
	"export.no_slides":    "无内容可导出：演示文稿为空",
	"export.ppt_failed":   "PowerPoint 导出失败：%s",
	"export.pdf_failed":   "PDF 导出失败：%s",
	"export.excel_failed": "大纲导出失败：%s",
	"export.word_failed":  "讲稿导出失败：%s",
	"export.pack_failed":  "演示包导出失败：%s",

	// Voice navigation
	"voice.enabled":  "已启用语音导航",
	"voice.disabled": "已关闭语音导航",

	// Image sourcing
	"image.failed":   "未能为 %q 找到图片",
	"image.disabled": "设置中已关闭图片来源",
	"image.no_hint":  "幻灯片没有图片关键词",
	"image.resolved": "幻灯片 %d 的图片已就绪",

	// Metric sources
	"metric.not_found":          "未找到指标数据源",
	"metric.connection_failed":  "无法连接指标数据源：%s",
	"metric.query_failed":       "指标查询失败：%s",
	"metric.refresh_success":    "已根据 %s 更新幻灯片",
	"metric.not_big_number":     "只有大数字幻灯片可以从指标数据源刷新",
	"metric.added":              "已添加指标数据源 %q",
	"metric.removed":            "已删除指标数据源",
	"metric.unsupported_engine": "不支持的指标引擎 %q",

	// Deck library
	"library.saved":       "演示文稿已保存到库",
	"library.save_failed": "无法保存演示文稿：%s",
	"library.load_failed": "无法加载演示文稿：%s",
	"library.not_found":   "库中未找到该演示文稿",
	"library.deleted":     "已从库中删除演示文稿",

	// Content sources
	"source.fetch_failed":   "无法获取页面",
	"source.nothing_usable": "来源中没有可用大纲",
	"source.read_failed":    "无法读取来源文件",

	// Config
	"config.save_success": "设置已保存",
	"config.save_failed":  "保存设置失败：%s",

	// Connection test
	"llm.test_success": "连接正常",
	"llm.test_failed":  "连接失败：%s",
}
