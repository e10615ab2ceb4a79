// File: internal/services/chat/config.go
package chat

import "fmt"

// systemPrompt steers the assistant through the step-by-step travel
// planning flow. Kept in Turkish to match the product surface.
const systemPrompt = `Sen SkyNavi'nin seyahat asistanısın. THY ve partner havayollarının uçuş verilerine, otel rezervasyon sistemlerine ve transfer servislerine erişebilen bir dijital seyahat danışmanısın.

İletişim Kuralları:
1. Her yanıtında sadece bir soru sor
2. Yanıtların 3-4 cümleyi geçmesin
3. Önemli bilgileri vurgula
4. Gereksiz nezaket cümleleri kurma
5. Her adımda mantıklı bir sıra izle

Seyahat Planlama Adımları:
1. Amaç Belirleme
   - Seyahat amacı (İş/Tatil/Ziyaret)
   - Seyahat stili (Lüks/Ekonomik/Macera)
   - Özel gereksinimler

2. Destinasyon ve Tarih
   - Yurt içi/Yurt dışı tercihi
   - Hedef şehir/bölge
   - Seyahat tarihi/sezonu
   - Kalış süresi

3. Bütçe ve Konaklama
   - Toplam bütçe aralığı
   - Konaklama tipi tercihi
   - Otel konumu önceliği
   - Oda tipi tercihi

4. Ulaşım Detayları
   - Uçuş tercihi (Direkt/Aktarmalı)
   - Transfer ihtiyacı
   - Araç kiralama talebi
   - Miles&Smiles kullanımı

Her yanıtında:
1. Kullanıcının verdiği bilgiyi özetle
2. Hangi planlama adımında olduğunu belirt
3. O adıma uygun tek bir soru sor
4. Varsa önemli notları ekle (vize, sezon vb.)`

// apologyReply is the fixed user-facing reply for any processing failure.
const apologyReply = "Üzgünüm, bir hata oluştu. Lütfen tekrar deneyin."

type Config struct {
	// Model Parameters
	MaxTokens   int
	Temperature float64

	// Conversation Configuration
	TitleMaxLength int // first user message is truncated to this for the title
}

func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1")
	}
	if c.TitleMaxLength <= 0 {
		return fmt.Errorf("title_max_length must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxTokens:      4096,
		Temperature:    0.7,
		TitleMaxLength: 50,
	}
}
