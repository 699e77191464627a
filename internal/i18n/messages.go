package i18n

import (
	"golang.org/x/text/message"
)

// Message keys. The English text doubles as the key.
const (
	MsgInvalidResponse = "The received response is not valid."
	MsgEmptyResponse   = "Received an empty response."
	MsgGenerationError = "An error occurred while generating the response. Please try again."
	MsgSelectFormType  = "Please select a form type to get started."
	MsgLocked          = "This module is locked. Unlock it to generate answers."
	MsgUsesLeft        = "%d uses left"
	MsgUnlocked        = "Unlocked"
	MsgPrice           = "Price: £%s"
	MsgGenerating      = "Generating answer..."
	MsgNoQuestions     = "There are no questions to show for your current answers."
	MsgSelectForm      = "Select form"
	MsgStartOver       = "Start over"
	MsgExplanation     = "Explanation"
	MsgEvidence        = "Evidence checklist"
	MsgNextSteps       = "Next steps"
	MsgImpact          = "Impact"
	MsgLength          = "Answer length"
	MsgPaymentSuccess  = "Payment successful. The module is now unlocked."
	MsgPaymentCancel   = "Payment was cancelled. Nothing was charged."
	MsgWaitingPayment  = "Complete the payment in your browser. Waiting for confirmation..."
	MsgDisclaimer      = "This tool gives guidance only and is not legal or financial advice."

	// Checker and screen labels.
	MsgCheckerTitle        = "Filled Form Checker"
	MsgFormType            = "Form Type"
	MsgUploadForm          = "Completed form file"
	MsgUploadEvidence      = "Evidence files (optional)"
	MsgAnalyze             = "Analyze & Score"
	MsgAnalyzing           = "Uploading & Analyzing..."
	MsgAnalysisFailed      = "Analysis failed. The file may be unsupported or there was a server error. Please try again."
	MsgOverallScore        = "Overall Score"
	MsgSubScores           = "Sub-scores"
	MsgQuestionScores      = "Per-Descriptor Scores"
	MsgSummary             = "Translation & Summary"
	MsgKeyFindings         = "Key Findings"
	MsgRecommendedEvidence = "Recommended Evidence"
	MsgImprovements        = "Improvement Suggestions"
	MsgBefore              = "Before"
	MsgAfter               = "After"
	MsgRationale           = "Rationale"
	MsgSaveImprovements    = "Save improvements (TXT)"
	MsgSaved               = "Saved to %s"
	MsgBack                = "Back"
	MsgHeader              = "UK PIP Assist"
	MsgSubheader           = "To get started, select the type of form you need"
	MsgUnlockTitle         = "Unlock this module"
	MsgPay                 = "Pay and unlock"
	MsgOpenURL             = "Open this link to pay: %s"
	MsgPaywall             = "To use this feature, please complete the payment first."
	MsgProgress            = "Question %d of %d"
	MsgFilePath            = "File path (comma separated for several files)"
	MsgPaymentTimeout      = "No confirmation was received. Please try again."
	MsgRedirecting         = "Redirecting..."
	MsgPaySecurely         = "Pay Securely £%s"
	MsgTagline             = "Trained on over 20,000 cases"
	MsgQuit                = "Quit"
	MsgLanguage            = "Language"
	MsgPressAnyKey         = "press any key to continue"
)

var translations = map[Lang]map[string]string{
	Farsi: {
		MsgInvalidResponse: "پاسخ دریافت شده معتبر نیست.",
		MsgEmptyResponse:   "پاسخ خالی دریافت شد.",
		MsgGenerationError: "متاسفانه در تولید پاسخ خطایی رخ داد. لطفا دوباره تلاش کنید.",
		MsgSelectFormType:  "لطفا برای شروع نوع فرم را انتخاب کنید.",
		MsgLocked:          "این بخش قفل است. برای دریافت پاسخ آن را باز کنید.",
		MsgUsesLeft:        "%d بار استفاده باقی مانده",
		MsgUnlocked:        "باز شده",
		MsgPrice:           "قیمت: £%s",
		MsgGenerating:      "در حال تولید پاسخ...",
		MsgNoQuestions:     "با پاسخ‌های فعلی شما سوالی برای نمایش وجود ندارد.",
		MsgSelectForm:      "انتخاب فرم",
		MsgStartOver:       "شروع دوباره",
		MsgExplanation:     "توضیح",
		MsgEvidence:        "چک‌لیست مدارک",
		MsgNextSteps:       "مراحل بعدی",
		MsgImpact:          "شدت تاثیر",
		MsgLength:          "طول پاسخ",
		MsgPaymentSuccess:  "پرداخت با موفقیت انجام شد. این بخش اکنون باز است.",
		MsgPaymentCancel:   "پرداخت لغو شد. هیچ مبلغی کسر نشد.",
		MsgWaitingPayment:  "پرداخت را در مرورگر کامل کنید. در انتظار تایید...",
		MsgDisclaimer:      "این ابزار فقط راهنمایی ارائه می‌دهد و مشاوره حقوقی یا مالی نیست.",

		MsgCheckerTitle:        "چک‌کردن فرم‌های پُر‌شده",
		MsgFormType:            "نوع فرم",
		MsgUploadForm:          "فایل فرم تکمیل‌شده",
		MsgUploadEvidence:      "فایل‌های مدارک (اختیاری)",
		MsgAnalyze:             "تحلیل و امتیازدهی",
		MsgAnalyzing:           "در حال آپلود و تحلیل...",
		MsgAnalysisFailed:      "تحلیل انجام نشد. ممکن است فایل پشتیبانی نشده باشد یا خطایی در ارتباط با سرور رخ داده باشد. لطفا دوباره تلاش کنید.",
		MsgOverallScore:        "امتیاز کلی",
		MsgSubScores:           "امتیازهای جزئی",
		MsgQuestionScores:      "امتیازات بر اساس توصیف‌گر",
		MsgSummary:             "ترجمه و خلاصه",
		MsgKeyFindings:         "یافته‌های کلیدی",
		MsgRecommendedEvidence: "مدارک پیشنهادی",
		MsgImprovements:        "پیشنهادات بهبود",
		MsgBefore:              "قبل",
		MsgAfter:               "بعد",
		MsgRationale:           "دلیل",
		MsgSaveImprovements:    "ذخیره اصلاحات (فایل متنی)",
		MsgSaved:               "در %s ذخیره شد",
		MsgBack:                "بازگشت",
		MsgHeader:              "UK PIP Assist",
		MsgSubheader:           "برای شروع، نوع فرم مورد نظر خود را انتخاب کنید",
		MsgUnlockTitle:         "باز کردن این بخش",
		MsgPay:                 "پرداخت و باز کردن",
		MsgOpenURL:             "برای پرداخت این لینک را باز کنید: %s",
		MsgPaywall:             "برای استفاده از این ویژگی، لطفاً ابتدا هزینه دسترسی را پرداخت کنید.",
		MsgProgress:            "سوال %d از %d",
		MsgFilePath:            "مسیر فایل (برای چند فایل با کاما جدا کنید)",
		MsgPaymentTimeout:      "تاییدی دریافت نشد. لطفا دوباره تلاش کنید.",
		MsgRedirecting:         "در حال انتقال...",
		MsgPaySecurely:         "پرداخت امن £%s",
		MsgTagline:             "آموزش دیده بر روی بیش از ۲۰٬۰۰۰ پرونده",
		MsgQuit:                "خروج",
		MsgLanguage:            "زبان",
		MsgPressAnyKey:         "برای ادامه یک کلید را فشار دهید",
	},
	Ukrainian: {
		MsgInvalidResponse: "Отримана відповідь недійсна.",
		MsgEmptyResponse:   "Отримано порожню відповідь.",
		MsgGenerationError: "Під час генерації відповіді сталася помилка. Будь ласка, спробуйте ще раз.",
		MsgSelectFormType:  "Будь ласка, виберіть тип форми, щоб почати.",
		MsgLocked:          "Цей модуль заблоковано. Розблокуйте його, щоб отримувати відповіді.",
		MsgUsesLeft:        "Залишилось використань: %d",
		MsgUnlocked:        "Розблоковано",
		MsgPrice:           "Ціна: £%s",
		MsgGenerating:      "Генерація відповіді...",
		MsgNoQuestions:     "Для ваших поточних відповідей немає запитань.",
		MsgSelectForm:      "Вибрати форму",
		MsgStartOver:       "Почати спочатку",
		MsgExplanation:     "Пояснення",
		MsgEvidence:        "Перелік документів",
		MsgNextSteps:       "Наступні кроки",
		MsgImpact:          "Сила впливу",
		MsgLength:          "Довжина відповіді",
		MsgPaymentSuccess:  "Оплата успішна. Модуль розблоковано.",
		MsgPaymentCancel:   "Оплату скасовано. Кошти не списано.",
		MsgWaitingPayment:  "Завершіть оплату в браузері. Очікуємо підтвердження...",
		MsgDisclaimer:      "Цей інструмент надає лише рекомендації і не є юридичною чи фінансовою консультацією.",

		MsgCheckerTitle:        "Перевірка заповнених форм",
		MsgFormType:            "Тип форми",
		MsgUploadForm:          "Файл заповненої форми",
		MsgUploadEvidence:      "Файли доказів (необов'язково)",
		MsgAnalyze:             "Аналізувати та оцінити",
		MsgAnalyzing:           "Завантаження та аналіз...",
		MsgAnalysisFailed:      "Аналіз не вдався. Можливо, файл не підтримується або сталася помилка сервера. Будь ласка, спробуйте ще раз.",
		MsgOverallScore:        "Загальна оцінка",
		MsgSubScores:           "Проміжні оцінки",
		MsgQuestionScores:      "Оцінки за дескрипторами",
		MsgSummary:             "Переклад та резюме",
		MsgKeyFindings:         "Ключові висновки",
		MsgRecommendedEvidence: "Рекомендовані докази",
		MsgImprovements:        "Пропозиції щодо покращення",
		MsgBefore:              "До",
		MsgAfter:               "Після",
		MsgRationale:           "Обґрунтування",
		MsgSaveImprovements:    "Зберегти покращення (TXT)",
		MsgSaved:               "Збережено в %s",
		MsgBack:                "Назад",
		MsgHeader:              "UK PIP Assist",
		MsgSubheader:           "Для початку виберіть потрібний тип форми",
		MsgUnlockTitle:         "Розблокувати модуль",
		MsgPay:                 "Оплатити та розблокувати",
		MsgOpenURL:             "Відкрийте це посилання для оплати: %s",
		MsgPaywall:             "Щоб використовувати цю функцію, будь ласка, спочатку здійсніть оплату.",
		MsgProgress:            "Питання %d з %d",
		MsgFilePath:            "Шлях до файлу (кілька файлів через кому)",
		MsgPaymentTimeout:      "Підтвердження не отримано. Будь ласка, спробуйте ще раз.",
		MsgRedirecting:         "Перенаправлення...",
		MsgPaySecurely:         "Безпечна оплата £%s",
		MsgTagline:             "Навчено на понад 20 000 справах",
		MsgQuit:                "Вийти",
		MsgLanguage:            "Мова",
		MsgPressAnyKey:         "натисніть будь-яку клавішу",
	},
}

func init() {
	for lang, msgs := range translations {
		tag := lang.Tag()
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic("i18n: register " + string(lang) + " " + key + ": " + err.Error())
			}
		}
	}
}

// Printer returns a message printer for l.
func Printer(l Lang) *message.Printer {
	return message.NewPrinter(l.Tag())
}

// T formats the message key in l.
func T(l Lang, key string, args ...any) string {
	return Printer(l).Sprintf(key, args...)
}
