package i18n

type Messages struct {
	Threads     string
	Pattern     string
	Words       string
	Webhook     string
	Benchmark   string
	GPUFallback string
	MatchTime   string
	MatchBIP39  string
	MatchAddr   string
	OpsPerSec   string
	Verify      string
}

func Get(lang string) Messages {
	switch lang {
	case "ru":
		return Messages{
			Threads:     "Количество потоков: %d\n",
			Pattern:     "Регулярное выражение: %s\n",
			Words:       "Слов в мнемонике: %d\n",
			Webhook:     "Webhook: %s\n",
			Benchmark:   "Бенчмарк: true\n",
			GPUFallback: "GPU-поиск недоступен, используется CPU",
			MatchTime:   "Время: %s\n",
			MatchBIP39:  "BIP39: %s\n",
			MatchAddr:   "Адрес: %s\n",
			OpsPerSec:   "~%d OP/S\n",
			Verify:      "Путь: %s\nАдрес: %s\n",
		}
	default: // "en"
		return Messages{
			Threads:     "Threads count: %d\n",
			Pattern:     "Matching regex: %s\n",
			Words:       "Mnemonic words count: %d\n",
			Webhook:     "Webhook: %s\n",
			Benchmark:   "Benchmark: true\n",
			GPUFallback: "GPU search is not available, running on CPU",
			MatchTime:   "Time: %s\n",
			MatchBIP39:  "BIP39: %s\n",
			MatchAddr:   "Address: %s\n",
			OpsPerSec:   "~%d OP/S\n",
			Verify:      "Path: %s\nAddress: %s\n",
		}
	}
}
