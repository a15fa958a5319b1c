package flow

const (
	MsgNotInitialized = "El asistente no está disponible en este momento. Intenta de nuevo en unos minutos."
	MsgWelcome        = "¡Hola! Soy tu asistente de viajes. ¿Cómo te llamas?"
	MsgWelcomeBack    = "¡Empecemos de nuevo! ¿Cómo te llamas?"
	MsgCompleted      = "Tu solicitud ya fue enviada a un asesor. Escribe \"reiniciar\" para empezar de nuevo o \"ver catálogo\" para explorar nuestros planes."
	MsgClarify        = "No logré entenderte."
	MsgChooseOption   = "Por favor elige una de las opciones."
	MsgNoPlans        = "Por ahora no tenemos planes publicados."
	MsgNoFAQs         = "Por ahora no tenemos preguntas frecuentes publicadas."

	promptName        = "¿Cómo te llamas?"
	promptDestination = "¿A qué destino te gustaría viajar?"
	promptDates       = "¿Para qué fecha te gustaría viajar?"
	promptPeople      = "¿Cuántas personas viajan? (por ejemplo: 2 adultos y 1 niño)"
	promptWaiting     = "Escribe cualquier mensaje cuando estés listo para continuar."
	promptFAQCategory = "¿Sobre qué tema tienes dudas?"
	promptFAQQuestion = "¿Qué pregunta te interesa?"

	optRestart       = "Reiniciar"
	optCatalog       = "Ver catálogo"
	optFAQ           = "Preguntas frecuentes"
	optOtherQuestion = "Otra pregunta"
	optCategories    = "Ver categorías"
	optContinue      = "Continuar"

	placeholderSlot = "por definir"
)

var (
	menuDateOptions   = []string{"Este mes", "El próximo mes", "Aún no lo sé"}
	menuPeopleOptions = []string{"Solo yo", "2 personas", "Familia", "Grupo"}
)
