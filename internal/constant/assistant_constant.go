package constant

const (
	// Session derivation defaults. A merged save keeps a customized title but
	// replaces one that still equals the placeholder.
	SessionTitlePlaceholder   = "新对话"
	SessionPreviewPlaceholder = "点击查看详情"
	SessionDefaultTag         = "AI 推荐"

	SessionDateJustNow = "刚刚"
	SessionDateToday   = "今天"

	SessionTitleMaxRunes   = 15
	SessionPreviewMaxRunes = 30

	// Persisted collection cap. The oldest record is evicted past this.
	SessionRetentionCap = 20

	// Key-value storage keys.
	SessionCollectionStorageKey = "chat_sessions"
	UserProfileStorageKey       = "user_profile"
)

const (
	// AssistantSystemPromptTemplate constrains answers to the active city and
	// tone. Fills: city.
	AssistantSystemPromptTemplate = `你是一个专业的AI租房顾问"智寓AI"。
用户当前的城市是：%s。你的所有推荐必须严格限制在这个城市。
请语气亲切、专业。回答请简练，不要长篇大论。`

	// AssistantPreferenceNoteTemplate extends the system prompt when the user
	// has onboarded preferences. Fills: work location, budget min, budget max.
	AssistantPreferenceNoteTemplate = "\n用户偏好：工作地点 %s，预算 %d-%d 元/月。推荐时请优先考虑。"

	// RetrievedContextNoteTemplate annotates the user turn with candidate
	// listings found by the retriever. Fill: JSON excerpt.
	RetrievedContextNoteTemplate = "\n\n[检索到的相关房源数据 (参考这些数据回答，如果合适请推荐)]: %s"

	// NoRetrievedContextNote is appended when retrieval found nothing; the
	// model answers from general knowledge instead of failing the turn.
	NoRetrievedContextNote = "\n\n[未检索到特定房源，请根据通用知识回答，或询问用户更多需求]"

	// ShownListingsNoteTemplate annotates a LISTING_CARDS history turn so the
	// model can resolve ordinal references conversationally. Fill: JSON.
	ShownListingsNoteTemplate = "[已向用户展示以下房源卡片]: %s"
)

const (
	// SignCardTextTemplate is the assistant text accompanying a contract
	// card. Fill: listing title.
	SignCardTextTemplate = "好的，已为您准备好**%s**的电子合约。请确认房源信息无误后，点击下方按钮开始签约。"

	// SignedConfirmationTemplate rewrites the SIGN_CARD text once the
	// listing's signed-state flips. Fill: listing title.
	SignedConfirmationTemplate = "恭喜您！**%s** 签约成功。请及时支付相关费用。"
)

const (
	// User-facing fallbacks. The completion gateway never surfaces raw
	// transport errors past its boundary.
	CompletionQuotaExceededReply = "抱歉，AI 思考次数已达免费额度上限。请稍等一分钟后再试。"
	CompletionUnavailableReply   = "抱歉，通讯出现状况，请稍后再试。"
	CompletionNetworkErrorReply  = "网络连接似乎有点问题。"
	CompletionEmptyReply         = "抱歉，我现在有点繁忙，请稍后再试。"
)
