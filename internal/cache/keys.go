package cache

const keyPrefix = "chatask:"

func SurveyKey(id string) string {
	return keyPrefix + "survey:" + id
}

func SurveyListPattern() string {
	return keyPrefix + "surveys:list:*"
}

func SurveyListKey(fingerprint string) string {
	return keyPrefix + "surveys:list:" + fingerprint
}
