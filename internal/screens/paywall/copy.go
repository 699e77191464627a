package paywall

import (
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

// offer is the sales copy shown for one module.
type offer struct {
	Title    i18n.Text
	Features []i18n.Text
	Includes i18n.Text
}

var (
	pipOffer = offer{
		Title: i18n.Text{
			i18n.English:   "Unlock the PIP Form Assistant",
			i18n.Farsi:     "دستیار فرم PIP را باز کنید",
			i18n.Ukrainian: "Розблокуйте помічника з форми PIP",
		},
		Features: []i18n.Text{
			{
				i18n.English:   "Guidance for every daily living and mobility activity",
				i18n.Farsi:     "راهنمایی برای همه فعالیت‌های زندگی روزمره و تحرک",
				i18n.Ukrainian: "Поради щодо кожної щоденної діяльності та мобільності",
			},
			{
				i18n.English:   "Answers written in the language assessors expect",
				i18n.Farsi:     "پاسخ‌هایی به زبانی که ارزیاب‌ها انتظار دارند",
				i18n.Ukrainian: "Відповіді мовою, яку очікують оцінювачі",
			},
			{
				i18n.English:   "Evidence checklist for each question",
				i18n.Farsi:     "فهرست مدارک لازم برای هر سوال",
				i18n.Ukrainian: "Перелік доказів для кожного питання",
			},
		},
		Includes: i18n.Text{
			i18n.English:   "Includes one-time full use of the form assistant.",
			i18n.Farsi:     "شامل یک بار استفاده کامل از دستیار فرم.",
			i18n.Ukrainian: "Включає одноразове повне використання помічника.",
		},
	}

	checkerOffer = offer{
		Title: i18n.Text{
			i18n.English:   "Unlock the Form Checker",
			i18n.Farsi:     "چک‌کننده فرم را باز کنید",
			i18n.Ukrainian: "Розблокуйте перевірку форм",
		},
		Features: []i18n.Text{
			{
				i18n.English:   "Scores for your completed form and evidence",
				i18n.Farsi:     "امتیازدهی به فرم تکمیل‌شده و مدارک شما",
				i18n.Ukrainian: "Оцінка вашої заповненої форми та доказів",
			},
			{
				i18n.English:   "Suggested rewrites with before and after",
				i18n.Farsi:     "پیشنهاد بازنویسی با متن قبل و بعد",
				i18n.Ukrainian: "Пропозиції змін з текстом до і після",
			},
		},
		Includes: i18n.Text{
			i18n.English:   "Includes 5 uses.",
			i18n.Farsi:     "شامل ۵ بار استفاده.",
			i18n.Ukrainian: "Включає 5 використань.",
		},
	}

	defaultOffer = offer{
		Title: i18n.Text{
			i18n.English:   "Unlock the Form Assistant",
			i18n.Farsi:     "دستیار فرم را باز کنید",
			i18n.Ukrainian: "Розблокуйте помічника з форми",
		},
		Features: []i18n.Text{
			{
				i18n.English:   "Step-by-step guidance for every question",
				i18n.Farsi:     "راهنمایی گام‌به‌گام برای هر سوال",
				i18n.Ukrainian: "Покрокові поради до кожного питання",
			},
			{
				i18n.English:   "Evidence checklist and next steps",
				i18n.Farsi:     "فهرست مدارک و گام‌های بعدی",
				i18n.Ukrainian: "Перелік доказів і наступні кроки",
			},
		},
		Includes: i18n.Text{
			i18n.English:   "Includes one-time full use of the form assistant.",
			i18n.Farsi:     "شامل یک بار استفاده کامل از دستیار فرم.",
			i18n.Ukrainian: "Включає одноразове повне використання помічника.",
		},
	}
)

func offerFor(moduleID string) offer {
	switch moduleID {
	case "pip":
		return pipOffer
	case content.FormChecker:
		return checkerOffer
	}
	return defaultOffer
}
