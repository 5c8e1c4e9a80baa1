package repository

import (
	"langconnect/internal/domain"

	"gorm.io/gorm"
)

// Seed заполняет каталоги (подарки, тарифы, достижения, уроки),
// если они ещё пустые. Повторный запуск ничего не дублирует.
func Seed(db *gorm.DB) error {
	gifts := []domain.Gift{
		{Name: "Роза", Icon: "🌹", Price: 10},
		{Name: "Кофе", Icon: "☕", Price: 15},
		{Name: "Торт", Icon: "🎂", Price: 25},
		{Name: "Мишка", Icon: "🧸", Price: 40},
		{Name: "Букет", Icon: "💐", Price: 60},
		{Name: "Бриллиант", Icon: "💎", Price: 100},
	}
	for _, g := range gifts {
		if err := db.Where(domain.Gift{Name: g.Name}).
			Attrs(g).FirstOrCreate(&domain.Gift{}).Error; err != nil {
			return err
		}
	}

	plans := []domain.VipPlan{
		{Tier: domain.VipTierSilver, Price: 500, XPMultiplier: 2, Description: "Серебряный значок и x2 к опыту"},
		{Tier: domain.VipTierGold, Price: 1000, XPMultiplier: 3, Description: "Золотой значок и x3 к опыту"},
		{Tier: domain.VipTierDiamond, Price: 2500, XPMultiplier: 5, Description: "Бриллиантовый значок и x5 к опыту"},
	}
	for _, p := range plans {
		if err := db.Where(domain.VipPlan{Tier: p.Tier}).
			Attrs(p).FirstOrCreate(&domain.VipPlan{}).Error; err != nil {
			return err
		}
	}

	achievements := []domain.Achievement{
		{Name: "Первые слова", Description: "Отправьте первое сообщение", Icon: "💬", Counter: domain.CounterTotalMessages, Target: 1},
		{Name: "Болтун", Description: "Отправьте 50 сообщений", Icon: "🗣️", Counter: domain.CounterTotalMessages, Target: 50},
		{Name: "Полиглот", Description: "Выучите 100 слов", Icon: "📚", Counter: domain.CounterWordsLearned, Target: 100},
		{Name: "Любимец публики", Description: "Получите 10 подарков", Icon: "🎁", Counter: domain.CounterGiftsReceived, Target: 10},
		{Name: "Неделя без пропусков", Description: "Серия из 7 дней подряд", Icon: "🔥", Counter: domain.CounterStreakDays, Target: 7},
		{Name: "Пятый уровень", Description: "Достигните 5 уровня", Icon: "⭐", Counter: domain.CounterLevel, Target: 5},
		{Name: "Прилежный ученик", Description: "Пройдите 10 уроков", Icon: "🎓", Counter: domain.CounterLessonsCompleted, Target: 10},
	}
	for _, a := range achievements {
		if err := db.Where(domain.Achievement{Name: a.Name}).
			Attrs(a).FirstOrCreate(&domain.Achievement{}).Error; err != nil {
			return err
		}
	}

	lessons := []domain.Lesson{
		{Language: "English", Title: "Приветствие и знакомство", Description: "Базовые фразы для первого разговора", XPReward: 50, LevelRequired: 1},
		{Language: "English", Title: "Еда и рестораны", Description: "Как сделать заказ и обсудить меню", XPReward: 60, LevelRequired: 1},
		{Language: "English", Title: "Путешествия", Description: "Аэропорт, отель, дорога", XPReward: 80, LevelRequired: 2},
		{Language: "English", Title: "Деловой английский", Description: "Переписка и созвоны", XPReward: 120, LevelRequired: 3},
		{Language: "Spanish", Title: "Приветствие и знакомство", Description: "Базовые фразы для первого разговора", XPReward: 50, LevelRequired: 1},
		{Language: "Spanish", Title: "Семья и друзья", Description: "Рассказ о близких", XPReward: 60, LevelRequired: 1},
		{Language: "Spanish", Title: "Город и транспорт", Description: "Как спросить дорогу", XPReward: 80, LevelRequired: 2},
	}
	for _, l := range lessons {
		if err := db.Where(domain.Lesson{Language: l.Language, Title: l.Title}).
			Attrs(l).FirstOrCreate(&domain.Lesson{}).Error; err != nil {
			return err
		}
	}

	return nil
}
