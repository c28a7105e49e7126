package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pageza/ada/backend/internal/metrics"
	"github.com/pageza/ada/backend/internal/models"
)

const (
	systemInstruction = "You are a helpful Turkish Nutritionist AI. Output JSON only."
	storesPrompt      = "Bulunduğum konuma yakın, uygun fiyatlı süpermarketleri, manavları ve organik pazarları listele. Adreslerini ve google maps linklerini ver."
)

// GeminiOptions configures the Gemini client
type GeminiOptions struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// GeminiClient handles interactions with the Gemini generateContent API
type GeminiClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

var _ PlanGenerator = (*GeminiClient)(nil)

// NewGeminiClient creates a new GeminiClient instance. The API key falls back to
// the file named by GEMINI_API_KEY_FILE.
func NewGeminiClient(opts GeminiOptions) (*GeminiClient, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := strings.TrimRight(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}

	return &GeminiClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Part is a piece of message content
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a message of the conversation
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig controls the shape of the model output
type GenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// LatLng is a geographic position
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Tool enables a server-side tool for the request
type Tool struct {
	GoogleMaps *struct{} `json:"googleMaps,omitempty"`
}

// ToolConfig passes the position to the maps tool
type ToolConfig struct {
	RetrievalConfig struct {
		LatLng LatLng `json:"latLng"`
	} `json:"retrievalConfig"`
}

// Request represents a request to the generateContent endpoint
type Request struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
	ToolConfig        *ToolConfig       `json:"toolConfig,omitempty"`
}

// GroundingChunk is one source cited by the model
type GroundingChunk struct {
	Maps *struct {
		Title string `json:"title"`
		URI   string `json:"uri"`
	} `json:"maps,omitempty"`
}

// Response represents a response from the generateContent endpoint
type Response struct {
	Candidates []struct {
		Content           Content `json:"content"`
		FinishReason      string  `json:"finishReason"`
		GroundingMetadata *struct {
			GroundingChunks []GroundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata,omitempty"`
	} `json:"candidates"`
}

// StoreLookup is the result of a nearby-store search. Message is set when
// Places is empty because of a failure.
type StoreLookup struct {
	Places  []models.Place `json:"places"`
	Message string         `json:"message,omitempty"`
}

// Generate asks the model for a weekly plan and validates the answer
func (c *GeminiClient) Generate(ctx context.Context, profile models.Profile) (*models.DietPlan, error) {
	reqBody := Request{
		SystemInstruction: &Content{Parts: []Part{{Text: systemInstruction}}},
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: BuildPlanPrompt(profile)}}},
		},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   dietPlanSchema,
		},
	}

	resp, err := c.call(ctx, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates in response", ErrGenerationFailed)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("%w: no response text generated", ErrGenerationFailed)
	}

	var plan models.DietPlan
	if err := json.Unmarshal([]byte(cleanJSON(text.String())), &plan); err != nil {
		log.Printf("[GeminiClient] Failed to parse plan: %v", err)
		return nil, fmt.Errorf("%w: failed to parse plan: %v", ErrGenerationFailed, err)
	}
	plan.Timestamp = nil

	if err := ValidatePlan(&plan); err != nil {
		log.Printf("[GeminiClient] Plan rejected: %v", err)
		return nil, err
	}
	return &plan, nil
}

// FindNearbyStores lists maps results around the position. Failures produce
// an empty list and a message, never an error.
func (c *GeminiClient) FindNearbyStores(ctx context.Context, lat, lng float64) StoreLookup {
	if !ValidCoordinates(lat, lng) {
		metrics.IncStoreLookup("unsupported")
		return StoreLookup{Places: []models.Place{}, Message: MsgGeolocationMissing}
	}

	toolConfig := &ToolConfig{}
	toolConfig.RetrievalConfig.LatLng = LatLng{Latitude: lat, Longitude: lng}
	reqBody := Request{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: storesPrompt}}},
		},
		Tools:      []Tool{{GoogleMaps: &struct{}{}}},
		ToolConfig: toolConfig,
	}

	resp, err := c.call(ctx, reqBody)
	if err != nil {
		log.Printf("[GeminiClient] Error finding stores: %v", err)
		metrics.IncStoreLookup("failure")
		return StoreLookup{Places: []models.Place{}, Message: MsgStoreLookupFailed}
	}

	places := []models.Place{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		places = PlacesFromChunks(resp.Candidates[0].GroundingMetadata.GroundingChunks)
	}
	metrics.IncStoreLookup("success")
	return StoreLookup{Places: places}
}

// PlacesFromChunks keeps the chunks that carry a maps result
func PlacesFromChunks(chunks []GroundingChunk) []models.Place {
	places := make([]models.Place, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Maps == nil {
			continue
		}
		title := chunk.Maps.Title
		if title == "" {
			title = MsgUnknownPlace
		}
		places = append(places, models.Place{Title: title, URI: chunk.Maps.URI})
	}
	return places
}

// ValidCoordinates reports whether lat and lng lie on the globe
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// BuildPlanPrompt renders the profile into the Turkish instruction prompt
func BuildPlanPrompt(profile models.Profile) string {
	bmi := BMI(profile.Height, profile.Weight)
	diff := profile.Weight - profile.TargetWeight
	if diff < 0 {
		diff = -diff
	}

	restrictions := ""
	if r := strings.TrimSpace(profile.DietaryRestrictions); r != "" {
		restrictions = fmt.Sprintf("\n- Kısıtlamalar: %s", r)
	}

	return fmt.Sprintf(`Sen uzman bir diyetisyen, matematikçi ve beslenme koçusun. Aşağıdaki profil için 7 günlük kişiselleştirilmiş bir Türk mutfağına uygun diyet planı oluştur.

Profil:
- Yaş: %d
- Boy: %g cm
- Kilo: %g kg (VKİ: %.2f)
- Hedef Kilo: %g kg (Fark: %.1f kg)
- Cinsiyet: %s
- Hedef: %s
- Aktivite Seviyesi: %s%s

Görevler:
1. Mifflin-St Jeor formülünü kullanarak BMR ve aktivite seviyesine göre TDEE (Günlük Enerji Harcaması) hesapla.
2. Hedef belirleme:
   - Eğer hedef Kilo Vermek ise: Sağlıklı bir kalori açığı oluştur (Örn: -500 kcal).
   - Eğer hedef Kilo Almak ise: Sağlıklı bir kalori fazlalığı oluştur (Örn: +300 ila +500 kcal).
   - Eğer hedef Korumak ise: TDEE'ye eşit kalori ver.
3. Süre Tahmini Hesaplama (Analysis Kısmı için):
   - Kilo Vermek için: (Hedeflenen Toplam Kayıp kg * 7700) / Günlük Açık = Gün sayısı. Bunu haftaya çevir.
   - Kilo Almak için: (Hedeflenen Toplam Kazanım kg * 7700) / Günlük Fazlalık = Gün sayısı. Bunu haftaya çevir.
   - Varsayım: 1 kg vücut değişimi ≈ 7700 kcal.
4. "Analysis" objesi içinde bu sayısal verileri kesinlikle döndür.
5. Yemek planı Türk damak tadına uygun olsun, malzemeler Türkiye'de bulunabilir olsun.
6. Yanıt sadece JSON formatında olsun.`,
		profile.Age,
		profile.Height,
		profile.Weight, bmi,
		profile.TargetWeight, diff,
		profile.Gender,
		profile.Goal,
		profile.ActivityLevel, restrictions,
	)
}

func (c *GeminiClient) call(ctx context.Context, reqBody Request) (*Response, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.apiURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[GeminiClient] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var apiResp Response
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &apiResp, nil
}

// cleanJSON strips a markdown code fence around the model output
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
