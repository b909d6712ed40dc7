package qa

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Fixed user-facing strings.
const (
	EmptyReplyText = "عذراً، لم أستطع صياغة إجابة حالياً."
	FailureText    = "حدث خطأ أثناء الاتصال بالذكاء الاصطناعي."
	ThinkingText   = "جاري التفكير في إجابة علمية..."
	EmptyHint      = "اسأل أي شيء عن الجاذبية!"
	ExampleHint    = "مثال: ماذا يحدث للوقت بالقرب من ثقب أسود؟"
	Placeholder    = "اكتب سؤالك هنا..."
)

const arabicPersona = "أنت عالم فيزياء فلكية خبير. أجب على أسئلة المستخدم حول الجاذبية والفيزياء بطريقة مشوقة وسهلة الفهم باللغة العربية. استخدم أمثلة توضيحية."

const personaTemplate = "You are an expert astrophysicist. Answer the user's questions about gravity and physics in an engaging, easy-to-understand way, always in %s. Use illustrative examples."

// Persona is the system instruction sent with every question.
func Persona(lang language.Tag) string {
	base, _ := lang.Base()
	if arabic, _ := language.Arabic.Base(); base == arabic {
		return arabicPersona
	}
	name := display.English.Tags().Name(lang)
	if name == "" {
		name = lang.String()
	}
	return fmt.Sprintf(personaTemplate, name)
}
