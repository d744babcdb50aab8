package kana

// halfwidth is indexed by r - U+3041 and covers the whole hiragana range.
//
// ゎ, ゐ, ゑ, ゕ and ゖ have no half-width katakana form. They map to the
// closest modern syllable (ﾜ, ｲ, ｴ, ｶ, ｹ), so these conversions are lossy.
var halfwidth = [hiraganaLast - hiraganaFirst + 1]string{
	// ぁ あ ぃ い ぅ う ぇ え ぉ お
	"ｧ", "ｱ", "ｨ", "ｲ", "ｩ", "ｳ", "ｪ", "ｴ", "ｫ", "ｵ",
	// か が き ぎ く ぐ け げ こ ご
	"ｶ", "ｶﾞ", "ｷ", "ｷﾞ", "ｸ", "ｸﾞ", "ｹ", "ｹﾞ", "ｺ", "ｺﾞ",
	// さ ざ し じ す ず せ ぜ そ ぞ
	"ｻ", "ｻﾞ", "ｼ", "ｼﾞ", "ｽ", "ｽﾞ", "ｾ", "ｾﾞ", "ｿ", "ｿﾞ",
	// た だ ち ぢ っ つ づ て で と ど
	"ﾀ", "ﾀﾞ", "ﾁ", "ﾁﾞ", "ｯ", "ﾂ", "ﾂﾞ", "ﾃ", "ﾃﾞ", "ﾄ", "ﾄﾞ",
	// な に ぬ ね の
	"ﾅ", "ﾆ", "ﾇ", "ﾈ", "ﾉ",
	// は ば ぱ ひ び ぴ ふ ぶ ぷ
	"ﾊ", "ﾊﾞ", "ﾊﾟ", "ﾋ", "ﾋﾞ", "ﾋﾟ", "ﾌ", "ﾌﾞ", "ﾌﾟ",
	// へ べ ぺ ほ ぼ ぽ
	"ﾍ", "ﾍﾞ", "ﾍﾟ", "ﾎ", "ﾎﾞ", "ﾎﾟ",
	// ま み む め も
	"ﾏ", "ﾐ", "ﾑ", "ﾒ", "ﾓ",
	// ゃ や ゅ ゆ ょ よ
	"ｬ", "ﾔ", "ｭ", "ﾕ", "ｮ", "ﾖ",
	// ら り る れ ろ
	"ﾗ", "ﾘ", "ﾙ", "ﾚ", "ﾛ",
	// ゎ わ ゐ ゑ を ん
	"ﾜ", "ﾜ", "ｲ", "ｴ", "ｦ", "ﾝ",
	// ゔ ゕ ゖ
	"ｳﾞ", "ｶ", "ｹ",
}
