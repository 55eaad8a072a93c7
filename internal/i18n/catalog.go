package i18n

// Key names one translatable string in the catalog.
type Key string

const (
	KeyListening       Key = "listening"
	KeyMicError        Key = "micError"
	KeyNetworkError    Key = "networkError"
	KeyVoiceSupport    Key = "voiceSupportError"
	KeyStayCalm        Key = "stayCalm"
	KeyEmergencyFound  Key = "emergencyDetected"
	KeyAmbulanceNumber Key = "ambulanceNumber"
	KeyPoliceNumber    Key = "policeNumber"
	KeyFireNumber      Key = "fireNumber"
	KeyEmpowerment     Key = "switchedToEmpowerment"
	KeyTutorialOpened  Key = "tutorialOpened"
	KeyGuruIntro       Key = "guruChatIntro"
	KeyConfirmPrompt   Key = "emergencyConfirm"
	KeyCancelled       Key = "requestCancelled"
	KeyBreatheSlowly   Key = "breatheSlowly"
	KeyEmergencyHelp   Key = "emergencyHelp"
	KeyHelpOnWay       Key = "helpOnWay"
	KeyYes             Key = "yes"
)

// variants holds the per-locale renderings of one key. Missing locales
// fall back to English; every entry must at least carry English.
type variants map[Locale]string

var catalog = map[Key]variants{
	KeyListening: {
		English: "Listening...",
		Hindi:   "सुन रहा हूँ...",
		Telugu:  "వింటున్నాను...",
		Tamil:   "கேட்கிறேன்...",
	},
	KeyMicError: {
		English: "There is a problem with the microphone. Please try again.",
		Hindi:   "माइक्रोफ़ोन में समस्या है। कृपया फिर से कोशिश करें।",
		Telugu:  "మైక్రోఫోన్‌లో సమస్య ఉంది. దయచేసి మళ్లీ ప్రయత్నించండి.",
		Tamil:   "மைக்ரோஃபோனில் சிக்கல் உள்ளது. மீண்டும் முயற்சிக்கவும்.",
	},
	KeyNetworkError: {
		English: "Sorry, there is a network issue. Please try again in a moment.",
		Hindi:   "माफ़ कीजिए, नेटवर्क में समस्या है। कृपया थोड़ी देर बाद फिर कोशिश करें।",
		Telugu:  "క్షమించండి, నెట్‌వర్క్ సమస్య ఉంది. దయచేసి కాసేపటి తర్వాత ప్రయత్నించండి.",
		Tamil:   "மன்னிக்கவும், நெட்வொர்க் சிக்கல் உள்ளது. சிறிது நேரம் கழித்து முயற்சிக்கவும்.",
	},
	KeyVoiceSupport: {
		English: "Voice input is not available on this device.",
		Hindi:   "इस डिवाइस पर वॉयस इनपुट उपलब्ध नहीं है।",
		Telugu:  "ఈ పరికరంలో వాయిస్ ఇన్‌పుట్ అందుబాటులో లేదు.",
		Tamil:   "இந்த சாதனத்தில் குரல் உள்ளீடு கிடைக்கவில்லை.",
	},
	KeyStayCalm: {
		English: "Please stay calm.",
		Hindi:   "कृपया शांत रहें।",
		Telugu:  "దయచేసి ప్రశాంతంగా ఉండండి.",
		Tamil:   "தயவுசெய்து அமைதியாக இருங்கள்.",
	},
	KeyEmergencyFound: {
		English: "I am taking you to the safety screen for emergency help.",
		Hindi:   "मैं आपको आपातकालीन मदद के लिए सुरक्षा स्क्रीन पर ले जा रहा हूँ।",
		Telugu:  "అత్యవసర సహాయం కోసం మిమ్మల్ని భద్రతా స్క్రీన్‌కు తీసుకెళ్తున్నాను.",
		Tamil:   "அவசர உதவிக்காக உங்களை பாதுகாப்பு திரைக்கு அழைத்துச் செல்கிறேன்.",
	},
	KeyAmbulanceNumber: {
		English: "The ambulance number is 108. Call 108 for medical emergencies.",
		Hindi:   "एम्बुलेंस का नंबर 108 है। मेडिकल इमरजेंसी के लिए 108 पर कॉल करें।",
		Telugu:  "అంబులెన్స్ నంబర్ 108. వైద్య అత్యవసర పరిస్థితుల్లో 108కి కాల్ చేయండి.",
		Tamil:   "ஆம்புலன்ஸ் எண் 108. மருத்துவ அவசரத்திற்கு 108 ஐ அழைக்கவும்.",
	},
	KeyPoliceNumber: {
		English: "The police number is 100. Call 100 for police help.",
		Hindi:   "पुलिस का नंबर 100 है। पुलिस सहायता के लिए 100 पर कॉल करें।",
		Telugu:  "పోలీస్ నంబర్ 100. పోలీసు సహాయం కోసం 100కి కాల్ చేయండి.",
		Tamil:   "காவல்துறை எண் 100. காவல் உதவிக்கு 100 ஐ அழைக்கவும்.",
	},
	KeyFireNumber: {
		English: "The fire brigade number is 101. Call 101 for fire emergencies.",
		Hindi:   "फायर ब्रिगेड का नंबर 101 है। आग लगने पर 101 पर कॉल करें।",
		Telugu:  "ఫైర్ బ్రిగేడ్ నంబర్ 101. అగ్ని ప్రమాదాల్లో 101కి కాల్ చేయండి.",
		Tamil:   "தீயணைப்பு எண் 101. தீ விபத்துக்கு 101 ஐ அழைக்கவும்.",
	},
	KeyEmpowerment: {
		English: "Let me help you with government schemes and your rights.",
		Hindi:   "मैं सरकारी योजनाओं और आपके अधिकारों में आपकी मदद करता हूँ।",
		Telugu:  "ప్రభుత్వ పథకాలు మరియు మీ హక్కులలో నేను మీకు సహాయం చేస్తాను.",
		Tamil:   "அரசு திட்டங்கள் மற்றும் உங்கள் உரிமைகளில் உதவுகிறேன்.",
	},
	KeyTutorialOpened: {
		English: "Opening the guide for you.",
		Hindi:   "आपके लिए गाइड खोल रहा हूँ।",
		Telugu:  "మీ కోసం గైడ్ తెరుస్తున్నాను.",
		Tamil:   "உங்களுக்காக வழிகாட்டியைத் திறக்கிறேன்.",
	},
	KeyGuruIntro: {
		English: "Hello! I am your Guru. Tell me what problem you are facing, and we will solve it together.",
		Hindi:   "नमस्ते! मैं आपका गुरु हूँ। बताइए आपको क्या समस्या है, हम मिलकर हल करेंगे।",
		Telugu:  "నమస్తే! నేను మీ గురు. మీకు ఏ సమస్య ఉందో చెప్పండి, కలిసి పరిష్కరిద్దాం.",
		Tamil:   "வணக்கம்! நான் உங்கள் குரு. உங்கள் பிரச்சனையைச் சொல்லுங்கள், சேர்ந்து தீர்ப்போம்.",
	},
	KeyConfirmPrompt: {
		English: "Do you need emergency help? Please say yes or no.",
		Hindi:   "क्या आपको आपातकालीन मदद चाहिए? कृपया हाँ या नहीं कहें।",
		Telugu:  "మీకు అత్యవసర సహాయం కావాలా? దయచేసి అవును లేదా కాదు అని చెప్పండి.",
		Tamil:   "உங்களுக்கு அவசர உதவி வேண்டுமா? ஆம் அல்லது இல்லை என்று சொல்லுங்கள்.",
	},
	KeyCancelled: {
		English: "Okay, the request has been cancelled.",
		Hindi:   "ठीक है, अनुरोध रद्द कर दिया गया है।",
		Telugu:  "సరే, అభ్యర్థన రద్దు చేయబడింది.",
		Tamil:   "சரி, கோரிக்கை ரத்து செய்யப்பட்டது.",
	},
	KeyBreatheSlowly: {
		English: "Take deep breaths.",
		Hindi:   "गहरी साँस लें।",
		Telugu:  "లోతుగా శ్వాస తీసుకోండి.",
		Tamil:   "ஆழமாக மூச்சு விடுங்கள்.",
	},
	KeyEmergencyHelp: {
		English: "Help is being arranged for you right now.",
		Hindi:   "आपके लिए अभी मदद का इंतज़ाम किया जा रहा है।",
		Telugu:  "మీ కోసం ఇప్పుడే సహాయం ఏర్పాటు చేయబడుతోంది.",
		Tamil:   "உங்களுக்கு இப்போதே உதவி ஏற்பாடு செய்யப்படுகிறது.",
	},
	KeyHelpOnWay: {
		English: "Help is on the way. Keep your phone with you.",
		Hindi:   "मदद रास्ते में है। अपना फ़ोन अपने पास रखें।",
		Telugu:  "సహాయం దారిలో ఉంది. మీ ఫోన్ మీ దగ్గరే ఉంచుకోండి.",
		Tamil:   "உதவி வந்து கொண்டிருக்கிறது. உங்கள் போனை உங்களுடன் வைத்திருங்கள்.",
	},
	KeyYes: {
		English: "yes",
		Hindi:   "हाँ",
		Telugu:  "అవును",
		Tamil:   "ஆம்",
	},
}

// T renders one key in a locale, falling back to English when the locale
// variant is missing, and to the empty string for unknown keys.
func T(key Key, locale Locale) string {
	entry, ok := catalog[key]
	if !ok {
		return ""
	}
	if text, ok := entry[locale]; ok && text != "" {
		return text
	}
	return entry[English]
}
