package quizgen

import (
	"fmt"
	"strings"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/quizrepair"
)

const quizSystemPrompt = `You write multiple-choice quizzes for primary-school pupils.
Respond with a single JSON object and nothing else.`

// quizFormatRules mirrors the answer format the repair step expects.
var quizFormatRules = map[quizrepair.Locale]string{
	quizrepair.LocaleTurkish: `Lütfen soruları aşağıdaki JSON formatında yanıt ver. ÇOK ÖNEMLİ KURALLAR:

1. Her soru için TAM 4 seçenek olmalı
2. Doğru cevap HER ZAMAN options dizisinde bulunmalı
3. correctAnswer, doğru cevabın options dizisindeki TAM İNDEKS NUMARASI olmalı (0-3 arası)
4. Matematik işlemleri için örnek format:

{
  "questions": [
    {
      "question": "12 ÷ 3 = ?",
      "options": ["4", "3", "5", "6"],
      "correctAnswer": 0,
      "explanation": "12 bölü 3 işleminin sonucu 4 eder."
    },
    {
      "question": "8 × 2 = ?",
      "options": ["16", "14", "18", "12"],
      "correctAnswer": 0,
      "explanation": "8 çarpı 2 işleminin sonucu 16 eder."
    }
  ]
}

Önemli Notlar:
- Toplam %d soru oluştur
- Her soru için detaylı açıklama ekle
- Seçenekler karışık sırada olabilir ama correctAnswer değeri MUTLAKA doğru cevabın bulunduğu indeks olmalı
- Matematik işlemlerinde sonuç her zaman net ve kesin olmalıdır
- İşlem operatörleri: +, -, ×, ÷ (çarpma için * yerine × kullan)`,

	quizrepair.LocaleEnglish: `Answer in the JSON format below. VERY IMPORTANT RULES:

1. Every question has EXACTLY 4 options
2. The correct answer is ALWAYS one of the options
3. correctAnswer is the EXACT INDEX of the correct answer in options (0-3)
4. Example format for arithmetic:

{
  "questions": [
    {
      "question": "12 ÷ 3 = ?",
      "options": ["4", "3", "5", "6"],
      "correctAnswer": 0,
      "explanation": "12 divided by 3 equals 4."
    },
    {
      "question": "8 × 2 = ?",
      "options": ["16", "14", "18", "12"],
      "correctAnswer": 0,
      "explanation": "8 times 2 equals 16."
    }
  ]
}

Notes:
- Write %d questions in total
- Add a detailed explanation to every question
- Options may be in any order but correctAnswer MUST point at the correct one
- Arithmetic results must always be exact whole numbers
- Operators: +, -, ×, ÷ (use × rather than * for multiplication)`,
}

type difficultyText struct {
	label, guidance string
}

var difficultyTexts = map[quizrepair.Locale]map[domain.Difficulty]difficultyText{
	quizrepair.LocaleTurkish: {
		domain.DifficultyEasy:   {"Kolay", "Basit ve temel kavramları içermeli"},
		domain.DifficultyMedium: {"Orta", "Orta seviye düşünme becerileri gerektirmeli"},
		domain.DifficultyHard:   {"Zor", "Analitik düşünme ve problem çözme becerileri gerektirmeli"},
	},
	quizrepair.LocaleEnglish: {
		domain.DifficultyEasy:   {"Easy", "Cover simple, basic concepts"},
		domain.DifficultyMedium: {"Medium", "Require intermediate reasoning"},
		domain.DifficultyHard:   {"Hard", "Require analytical thinking and problem solving"},
	},
}

func buildQuizPrompt(req domain.QuizGenerationRequest, locale quizrepair.Locale) string {
	diff, ok := difficultyTexts[locale][req.Difficulty]
	if !ok {
		diff = difficultyTexts[locale][domain.DifficultyMedium]
	}

	var b strings.Builder
	if locale == quizrepair.LocaleEnglish {
		fmt.Fprintf(&b, "Write %d questions on the topic %q.\n", req.QuestionCount, req.Title)
		fmt.Fprintf(&b, "Audience: primary school grade %s pupils\n", req.Grade)
		fmt.Fprintf(&b, "Difficulty: %s\n\n", diff.label)
		b.WriteString("Notes:\n")
		fmt.Fprintf(&b, "- Questions must fit the grade %s curriculum\n", req.Grade)
		fmt.Fprintf(&b, "- %s\n", diff.guidance)
		b.WriteString("- Use clear, simple language\n")
		b.WriteString("- Add a detailed explanation to every question\n")
	} else {
		fmt.Fprintf(&b, "%s konusu için %d adet soru oluştur.\n", req.Title, req.QuestionCount)
		fmt.Fprintf(&b, "Hedef Kitle: İlkokul %s. sınıf öğrencileri\n", req.Grade)
		fmt.Fprintf(&b, "Zorluk Seviyesi: %s\n\n", diff.label)
		b.WriteString("Önemli Notlar:\n")
		fmt.Fprintf(&b, "- Sorular %s. sınıf müfredatına uygun olmalı\n", req.Grade)
		fmt.Fprintf(&b, "- %s\n", diff.guidance)
		b.WriteString("- Açık ve anlaşılır bir dil kullanılmalı\n")
		b.WriteString("- Her soru için detaylı açıklama eklenmelidir\n")
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, quizFormatRules[locale], req.QuestionCount)
	return b.String()
}

const curriculumSystemPrompt = `You design lesson plans for primary-school teachers.
Respond with a single JSON object and nothing else.`

var curriculumPrompts = map[quizrepair.Locale]string{
	quizrepair.LocaleTurkish: `%s konusu için bir eğitim müfredatı oluştur.

Lütfen aşağıdaki JSON formatında yanıt ver:

{
  "title": "Konu Başlığı",
  "description": "Konu açıklaması",
  "lessons": [
    {
      "title": "Ders başlığı",
      "content": "Ders içeriği",
      "objectives": ["Öğrenme hedefi 1", "Öğrenme hedefi 2"],
      "activities": ["Aktivite 1", "Aktivite 2"],
      "duration": "45 dakika"
    }
  ]
}

Önemli Notlar:
- Her ders için öğrenme hedefleri ekle
- Pratik aktiviteler ve örnekler içer
- İçerik ilkokul seviyesine uygun olmalı
- Dersler 45 dakikalık periyotlara bölünmeli
- Her dersin sonunda değerlendirme aktiviteleri olmalı`,

	quizrepair.LocaleEnglish: `Create a curriculum for the topic %s.

Answer in the JSON format below:

{
  "title": "Topic title",
  "description": "Topic description",
  "lessons": [
    {
      "title": "Lesson title",
      "content": "Lesson content",
      "objectives": ["Learning objective 1", "Learning objective 2"],
      "activities": ["Activity 1", "Activity 2"],
      "duration": "45 minutes"
    }
  ]
}

Notes:
- Give every lesson learning objectives
- Include hands-on activities and examples
- Content must suit primary school
- Split lessons into 45-minute periods
- End every lesson with an assessment activity`,
}

func buildCurriculumPrompt(topic string, locale quizrepair.Locale) string {
	return fmt.Sprintf(curriculumPrompts[locale], topic)
}
